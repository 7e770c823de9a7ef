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

// Package rosapi implements a client for the RouterOS device-management
// API: a length-prefixed word/sentence wire format over a persistent,
// authenticated socket.
//
// The protocol consists of a word codec, sentence and reply framing, a
// structured response parser, and a login negotiator that supports both
// the modern plaintext scheme and the legacy challenge-response scheme.
//
// This package is the main entry point into this library. A Connection
// is strictly half-duplex: one request must be fully written and its
// reply fully read before the next request is issued. Concurrent use
// requires separate Connection instances.
package rosapi

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/nettide/gorosapi/protocol"
	"github.com/nettide/gorosapi/protocol/auth"
	"github.com/nettide/gorosapi/query"
)

const defaultDialTimeout = 10 * time.Second

// The Connection type is a wrapper around a net.Conn object that handles
// communication using the device API protocol over that connection
type Connection struct {
	conn        net.Conn
	reader      *bufio.Reader
	address     string
	username    string
	password    string
	legacyAuth  bool
	useTls      bool
	tlsConfig   *tls.Config
	dialTimeout time.Duration
	skipLogin   bool
	logger      *slog.Logger
	onceClose   sync.Once
	// unusable is set once the peer sends a fatal block; every
	// subsequent operation fails until the caller reconnects
	unusable bool
}

// NewConnection returns a new Connection object with the specified
// options. If a connection is provided, the login handshake will be
// started. An error will be returned if the login fails
func NewConnection(options ...ConnectionOptionFunc) (*Connection, error) {
	c := &Connection{
		dialTimeout: defaultDialTimeout,
	}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.conn != nil {
		if err := c.setupConnection(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// New is an alias to NewConnection
func New(options ...ConnectionOptionFunc) (*Connection, error) {
	return NewConnection(options...)
}

// Dial will establish a connection to the configured address. The login
// handshake is started when the connection is established. An error
// will be returned if the connection fails, a connection was already
// established, or the login fails
func (c *Connection) Dial() error {
	if c.conn != nil {
		return fmt.Errorf("a connection was already established")
	}
	if c.address == "" {
		return fmt.Errorf("no address configured")
	}
	var conn net.Conn
	var err error
	dialer := net.Dialer{Timeout: c.dialTimeout}
	if c.useTls {
		tlsConfig := c.tlsConfig
		if tlsConfig == nil {
			tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		conn, err = tls.DialWithDialer(&dialer, "tcp", c.address, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", c.address)
	}
	if err != nil {
		return err
	}
	c.conn = conn
	if err := c.setupConnection(); err != nil {
		c.Close()
		return err
	}
	return nil
}

// Close will shutdown the connection
func (c *Connection) Close() error {
	var err error
	c.onceClose.Do(func() {
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}

// LegacyAuth returns whether the connection is configured for (or fell
// back to) the legacy login scheme
func (c *Connection) LegacyAuth() bool {
	return c.legacyAuth
}

// WriteSentence frames the given command words as a sentence and writes
// it to the peer
func (c *Connection) WriteSentence(words []string) error {
	if err := c.usable(); err != nil {
		return err
	}
	return protocol.WriteSentence(c.conn, words)
}

// ReadResponse reads one full reply and parses it into structured
// records. If the reply carries a fatal block, the parsed response is
// returned together with an error wrapping protocol.ErrConnectionUnusable
// since the peer is about to close the socket.
func (c *Connection) ReadResponse() (*protocol.ParsedResponse, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	reply, err := protocol.ReadReply(c.reader)
	if err != nil {
		return nil, err
	}
	resp := protocol.Parse(reply)
	if resp.Fatal() {
		c.unusable = true
		return resp, fmt.Errorf(
			"%w: %s",
			protocol.ErrConnectionUnusable,
			strings.Join(resp.Raw, " "),
		)
	}
	return resp, nil
}

// ReadReplyWords reads one full reply and returns its flat word list
// without attribute parsing
func (c *Connection) ReadReplyWords() ([]string, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	reply, err := protocol.ReadReply(c.reader)
	if err != nil {
		return nil, err
	}
	for _, sentence := range reply.Sentences {
		if len(sentence) > 0 && sentence[0] == protocol.MarkerFatal {
			c.unusable = true
		}
	}
	return reply.Words(), nil
}

// Run performs one half-duplex round trip: it writes the query as a
// sentence and reads the parsed reply
func (c *Connection) Run(q query.Query) (*protocol.ParsedResponse, error) {
	if err := c.WriteSentence(q.Words()); err != nil {
		return nil, err
	}
	return c.ReadResponse()
}

// Login drives the login negotiation on this connection. A legacy
// fallback detected by the negotiator is persisted on the connection so
// reconnect logic can skip scheme detection.
func (c *Connection) Login() error {
	authConfig := auth.NewConfig(
		auth.WithUsername(c.username),
		auth.WithPassword(c.password),
		auth.WithLegacy(c.legacyAuth),
		auth.WithLegacyDetectedFunc(func() {
			c.legacyAuth = true
		}),
		auth.WithLogger(c.logger),
	)
	client := auth.NewClient(c, &authConfig)
	if err := client.Login(); err != nil {
		return err
	}
	c.logger.Debug(
		"login complete",
		"address", c.address,
		"user", c.username,
		"legacy", c.legacyAuth,
	)
	return nil
}

// setupConnection prepares the buffered reader and performs the login
// handshake
func (c *Connection) setupConnection() error {
	c.reader = bufio.NewReader(c.conn)
	if c.skipLogin {
		return nil
	}
	return c.Login()
}

func (c *Connection) usable() error {
	if c.conn == nil {
		return fmt.Errorf("no connection established")
	}
	if c.unusable {
		return protocol.ErrConnectionUnusable
	}
	return nil
}
