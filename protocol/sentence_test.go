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

package protocol_test

import (
	"bytes"
	"testing"

	"github.com/nettide/gorosapi/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{"command only", []string{"/interface/print"}},
		{
			"command with attributes",
			[]string{"/login", "=name=admin", "=password="},
		},
		{
			"reply sentence",
			[]string{"!re", "=name=eth0", "=type=ether"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, protocol.WriteSentence(buf, tt.words))
			// Last framed byte must be the zero-length terminator
			framed := buf.Bytes()
			require.NotEmpty(t, framed)
			assert.Equal(t, byte(0), framed[len(framed)-1])
			words, err := protocol.ReadSentence(buf)
			require.NoError(t, err)
			assert.Equal(t, tt.words, words)
		})
	}
}

func TestReadSentenceEmpty(t *testing.T) {
	// A bare terminator is an empty sentence
	words, err := protocol.ReadSentence(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestWriteSentenceRejectsEmptyWord(t *testing.T) {
	err := protocol.WriteSentence(
		&bytes.Buffer{},
		[]string{"/login", ""},
	)
	require.ErrorIs(t, err, protocol.ErrEncoding)
}

func TestReadSentenceTruncated(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(
		t,
		protocol.WriteSentence(buf, []string{"!re", "=id=1"}),
	)
	// Drop the terminator and the last content byte
	truncated := buf.Bytes()[:buf.Len()-2]
	_, err := protocol.ReadSentence(bytes.NewReader(truncated))
	require.ErrorIs(t, err, protocol.ErrProtocol)
}
