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

package auth

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nettide/gorosapi/protocol"
)

// Transport is the write/read surface the negotiator drives. Replies
// are consumed in raw word form so challenge payloads are not
// prematurely interpreted as attributes.
type Transport interface {
	WriteSentence(words []string) error
	ReadReplyWords() ([]string, error)
}

// Client drives the login handshake over a transport. It is scoped to a
// single connection's login sequence; the only cross-call state is the
// one-shot fallback guard, discarded once negotiation resolves.
type Client struct {
	config    *Config
	transport Transport
	state     State
	// fellBack guards the ModernAttempt -> LegacyAttempt transition so
	// an ambiguous peer can never cause the negotiation to loop
	fellBack bool
	logger   *slog.Logger
}

// NewClient returns a new login negotiator over the given transport
func NewClient(transport Transport, cfg *Config) *Client {
	if cfg == nil {
		tmpCfg := NewConfig()
		cfg = &tmpCfg
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		config:    cfg,
		transport: transport,
		state:     StateInit,
		logger:    logger,
	}
}

// State returns the current negotiation state
func (c *Client) State() State {
	return c.state
}

// Login runs the negotiation state machine to completion. It returns
// nil once the peer accepted the credentials and an error wrapping
// ErrAuth once both schemes (or the one-shot fallback) were exhausted.
// Transport errors surface as-is.
func (c *Client) Login() error {
	var failure error
	for {
		switch c.state {
		case StateInit:
			if c.config.Legacy {
				c.state = StateLegacyAttempt
			} else {
				c.state = StateModernAttempt
			}
		case StateModernAttempt:
			failure = c.modernAttempt()
		case StateLegacyAttempt:
			failure = c.legacyAttempt()
		case StateAuthenticated:
			return nil
		case StateFailed:
			if failure == nil {
				failure = ErrAuth
			}
			return failure
		}
		if failure != nil && c.state != StateFailed {
			// Transport-level failure, not a scheme rejection
			return failure
		}
	}
}

// modernAttempt sends the plaintext credential login. A single !done
// line means success. A multi-line reply whose first line is !done
// means the peer actually expects the legacy scheme; fall back once.
func (c *Client) modernAttempt() error {
	words, err := c.roundTrip([]string{
		loginPath,
		attributeName + c.config.Username,
		attributePassword + c.config.Password,
	})
	if err != nil {
		return err
	}
	switch {
	case len(words) == 1 && words[0] == protocol.MarkerDone:
		c.state = StateAuthenticated
		return nil
	case len(words) > 1 && words[0] == protocol.MarkerDone:
		if c.fellBack {
			c.state = StateFailed
			return fmt.Errorf(
				"%w: legacy fallback already attempted",
				ErrAuth,
			)
		}
		c.fellBack = true
		c.logger.Debug(
			"peer expects legacy login scheme, falling back",
			"user", c.config.Username,
		)
		if c.config.LegacyDetectedFunc != nil {
			c.config.LegacyDetectedFunc()
		}
		c.state = StateLegacyAttempt
		return nil
	default:
		c.state = StateFailed
		return fmt.Errorf(
			"%w: peer rejected credentials: %s",
			ErrAuth,
			trapMessage(words),
		)
	}
}

// legacyAttempt performs the two round trips of the challenge-response
// scheme: a bare login to obtain the hex-encoded salt, then a login
// carrying the computed response.
func (c *Client) legacyAttempt() error {
	words, err := c.roundTrip([]string{loginPath})
	if err != nil {
		return err
	}
	salt, ok := findAttribute(words, challengeKey)
	if !ok {
		c.state = StateFailed
		return fmt.Errorf(
			"%w: peer returned no challenge salt",
			ErrAuth,
		)
	}
	response, err := ChallengeResponse(c.config.Password, salt)
	if err != nil {
		c.state = StateFailed
		return err
	}
	words, err = c.roundTrip([]string{
		loginPath,
		attributeName + c.config.Username,
		attributeResponse + response,
	})
	if err != nil {
		return err
	}
	if len(words) == 1 && words[0] == protocol.MarkerDone {
		c.state = StateAuthenticated
		return nil
	}
	c.state = StateFailed
	return fmt.Errorf(
		"%w: peer rejected challenge response: %s",
		ErrAuth,
		trapMessage(words),
	)
}

func (c *Client) roundTrip(request []string) ([]string, error) {
	if err := c.transport.WriteSentence(request); err != nil {
		return nil, err
	}
	return c.transport.ReadReplyWords()
}

// findAttribute scans raw reply words for "=key=value" and returns the
// value of the first match
func findAttribute(words []string, key string) (string, bool) {
	prefix := "=" + key + "="
	for _, word := range words {
		if value, ok := strings.CutPrefix(word, prefix); ok {
			return value, true
		}
	}
	return "", false
}

// trapMessage extracts the peer's error detail from a raw reply, if any
func trapMessage(words []string) string {
	if msg, ok := findAttribute(words, "message"); ok {
		return msg
	}
	return strings.Join(words, " ")
}
