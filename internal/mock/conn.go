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

// Package mock provides a scripted net.Conn that plays the device side
// of a conversation: each expected request sentence is answered with
// pre-framed reply sentences. Because the client is strictly
// half-duplex, replies are enqueued synchronously as requests arrive.
package mock

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/nettide/gorosapi/protocol"
)

// Exchange is one request/reply pair of the scripted conversation. A
// nil Expect matches any request sentence.
type Exchange struct {
	Expect  []string
	Replies [][]string
}

// Conn implements net.Conn over a scripted conversation
type Conn struct {
	mu       sync.Mutex
	script   []Exchange
	step     int
	readBuf  bytes.Buffer
	writeBuf bytes.Buffer
	failures []error
	closed   bool
}

// NewConn returns a connection that answers the given conversation
func NewConn(script ...Exchange) *Conn {
	return &Conn{
		script: script,
	}
}

func (m *Conn) Read(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, io.EOF
	}
	if m.readBuf.Len() == 0 {
		// Nothing queued: the script has nothing more to say
		return 0, io.EOF
	}
	return m.readBuf.Read(b)
}

func (m *Conn) Write(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	m.writeBuf.Write(b)
	// Consume every complete sentence accumulated so far
	for {
		reader := bytes.NewReader(m.writeBuf.Bytes())
		words, err := protocol.ReadSentence(reader)
		if err != nil {
			// Incomplete sentence, wait for more data
			break
		}
		consumed := m.writeBuf.Len() - reader.Len()
		m.writeBuf.Next(consumed)
		m.handleSentence(words)
	}
	return len(b), nil
}

func (m *Conn) handleSentence(words []string) {
	if m.step >= len(m.script) {
		m.failures = append(
			m.failures,
			fmt.Errorf("unexpected request past end of script: %v", words),
		)
		return
	}
	exchange := m.script[m.step]
	m.step++
	if exchange.Expect != nil && !slices.Equal(exchange.Expect, words) {
		m.failures = append(
			m.failures,
			fmt.Errorf(
				"request mismatch at step %d: expected %v, got %v",
				m.step,
				exchange.Expect,
				words,
			),
		)
	}
	for _, sentence := range exchange.Replies {
		// Buffer writes never fail
		_ = protocol.WriteSentence(&m.readBuf, sentence)
	}
}

// Failures returns script violations observed so far: unexpected or
// mismatched request sentences
func (m *Conn) Failures() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.failures)
}

// Exhausted returns whether every scripted exchange was consumed
func (m *Conn) Exhausted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step >= len(m.script)
}

func (m *Conn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Conn) LocalAddr() net.Addr                { return nil }
func (m *Conn) RemoteAddr() net.Addr               { return nil }
func (m *Conn) SetDeadline(t time.Time) error      { return nil }
func (m *Conn) SetReadDeadline(t time.Time) error  { return nil }
func (m *Conn) SetWriteDeadline(t time.Time) error { return nil }
