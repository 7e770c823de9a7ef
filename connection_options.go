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

package rosapi

import (
	"crypto/tls"
	"log/slog"
	"net"
	"time"
)

// ConnectionOptionFunc is a type that represents functions that modify
// the Connection config
type ConnectionOptionFunc func(*Connection)

// WithConnection specifies an existing connection to use. If none is
// provided, the Dial() function can be used to create one later
func WithConnection(conn net.Conn) ConnectionOptionFunc {
	return func(c *Connection) {
		c.conn = conn
	}
}

// WithAddress specifies the device address in host:port format
func WithAddress(address string) ConnectionOptionFunc {
	return func(c *Connection) {
		c.address = address
	}
}

// WithCredentials specifies the login credentials
func WithCredentials(username string, password string) ConnectionOptionFunc {
	return func(c *Connection) {
		c.username = username
		c.password = password
	}
}

// WithLegacyAuth specifies whether to skip login scheme detection and
// use the legacy challenge-response scheme immediately
func WithLegacyAuth(legacy bool) ConnectionOptionFunc {
	return func(c *Connection) {
		c.legacyAuth = legacy
	}
}

// WithTls specifies whether to use TLS for the connection
func WithTls(useTls bool) ConnectionOptionFunc {
	return func(c *Connection) {
		c.useTls = useTls
	}
}

// WithTlsConfig specifies the TLS config to use when TLS is enabled
func WithTlsConfig(tlsConfig *tls.Config) ConnectionOptionFunc {
	return func(c *Connection) {
		c.tlsConfig = tlsConfig
		c.useTls = true
	}
}

// WithDialTimeout specifies the timeout for establishing the connection
func WithDialTimeout(timeout time.Duration) ConnectionOptionFunc {
	return func(c *Connection) {
		if timeout > 0 {
			c.dialTimeout = timeout
		}
	}
}

// WithSkipLogin specifies whether to skip the login handshake during
// connection setup. This is useful for tests and for callers that want
// to drive the negotiation themselves
func WithSkipLogin(skipLogin bool) ConnectionOptionFunc {
	return func(c *Connection) {
		c.skipLogin = skipLogin
	}
}

// WithLogger specifies the logger to use. If none is provided, the
// default slog logger is used
func WithLogger(logger *slog.Logger) ConnectionOptionFunc {
	return func(c *Connection) {
		c.logger = logger
	}
}
