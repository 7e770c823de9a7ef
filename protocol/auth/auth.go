// Copyright 2026 Nettide Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package auth implements the RouterOS API login handshake. Device
// firmware implements one of two incompatible schemes: a modern
// plaintext credential login and a legacy MD5 challenge-response login.
// The negotiator auto-detects which one the peer expects and falls back
// from modern to legacy at most once per connection.
package auth

import (
	"errors"
	"log/slog"
)

// ErrAuth indicates login failed after both schemes (or the one-shot
// fallback) were exhausted
var ErrAuth = errors.New("authentication failed")

// Login endpoint and attribute words
const (
	loginPath         = "/login"
	attributeName     = "=name="
	attributePassword = "=password="
	attributeResponse = "=response="
	challengeKey      = "ret"
)

// State represents a step of the login negotiation
type State int

const (
	StateInit State = iota
	StateModernAttempt
	StateLegacyAttempt
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateModernAttempt:
		return "ModernAttempt"
	case StateLegacyAttempt:
		return "LegacyAttempt"
	case StateAuthenticated:
		return "Authenticated"
	case StateFailed:
		return "Failed"
	}
	return "Unknown"
}

// Config is used to configure the login negotiation
type Config struct {
	Username string
	Password string
	// Legacy skips scheme detection and starts with the legacy
	// challenge-response attempt
	Legacy bool
	// LegacyDetectedFunc is called when the modern attempt detects a
	// legacy peer, so the caller can persist the hint and skip
	// detection on future connections
	LegacyDetectedFunc LegacyDetectedFunc
	Logger             *slog.Logger
}

// LegacyDetectedFunc is called once when falling back to the legacy scheme
type LegacyDetectedFunc func()

// AuthOptionFunc represents a function used to modify the auth config
type AuthOptionFunc func(*Config)

// NewConfig returns a new auth config object with the provided options
func NewConfig(options ...AuthOptionFunc) Config {
	c := Config{}
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithUsername specifies the login name
func WithUsername(username string) AuthOptionFunc {
	return func(c *Config) {
		c.Username = username
	}
}

// WithPassword specifies the login password
func WithPassword(password string) AuthOptionFunc {
	return func(c *Config) {
		c.Password = password
	}
}

// WithLegacy specifies whether to start with the legacy scheme instead
// of detecting it
func WithLegacy(legacy bool) AuthOptionFunc {
	return func(c *Config) {
		c.Legacy = legacy
	}
}

// WithLegacyDetectedFunc specifies the legacy detection callback
func WithLegacyDetectedFunc(fn LegacyDetectedFunc) AuthOptionFunc {
	return func(c *Config) {
		c.LegacyDetectedFunc = fn
	}
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) AuthOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}
