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
	"testing"

	"github.com/nettide/gorosapi/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!re", "=name=eth0", "=type=ether"},
			{"!re", "=name=eth1", "=type=ether", "=.id=*2"},
			{"!done"},
		},
	}
	resp := protocol.Parse(reply)
	require.Len(t, resp.Records, 2)
	assert.Equal(
		t,
		protocol.Record{"name": "eth0", "type": "ether"},
		resp.Records[0],
	)
	assert.Equal(
		t,
		protocol.Record{"name": "eth1", "type": "ether", ".id": "*2"},
		resp.Records[1],
	)
	assert.Empty(t, resp.After)
	assert.Nil(t, resp.Raw)
	assert.False(t, resp.Fatal())
}

func TestParseSingleRecordTermination(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!re", "=id=1"},
			{"!done"},
		},
	}
	resp := protocol.Parse(reply)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, protocol.Record{"id": "1"}, resp.Records[0])
	assert.Empty(t, resp.After)
}

func TestParseTrapDetail(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!trap", "=message=no such command", "=category=0"},
			{"!done"},
		},
	}
	resp := protocol.Parse(reply)
	assert.Empty(t, resp.Records)
	assert.Equal(
		t,
		map[string]string{"message": "no such command", "category": "0"},
		resp.After,
	)
}

func TestParseDoneAttributes(t *testing.T) {
	// Attributes trailing the terminal marker (e.g. a legacy login
	// challenge) bind to the After mapping
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!done", "=ret=abcd1234"},
		},
	}
	resp := protocol.Parse(reply)
	assert.Empty(t, resp.Records)
	assert.Equal(t, map[string]string{"ret": "abcd1234"}, resp.After)
}

func TestParseBareAttributeSentence(t *testing.T) {
	// A sentence with no leading marker also binds to After
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"=ret=abcd1234"},
			{"!done"},
		},
	}
	resp := protocol.Parse(reply)
	assert.Equal(t, map[string]string{"ret": "abcd1234"}, resp.After)
}

func TestParseFatalPassthrough(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!fatal", "reason: link down"},
		},
	}
	resp := protocol.Parse(reply)
	assert.Empty(t, resp.Records)
	assert.Equal(t, []string{"!fatal", "reason: link down"}, resp.Raw)
	assert.True(t, resp.Fatal())
}

func TestParseFatalKeepsAccumulatedRecords(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!re", "=id=1"},
			{"!fatal", "shutting down"},
		},
	}
	resp := protocol.Parse(reply)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, []string{"!fatal", "shutting down"}, resp.Raw)
}

func TestParseSkipsMalformedWords(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!re", "=name=eth0", "not-an-attribute", "=novalue"},
			{"!done"},
		},
	}
	resp := protocol.Parse(reply)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, protocol.Record{"name": "eth0"}, resp.Records[0])
}

func TestParsePurity(t *testing.T) {
	reply := &protocol.Reply{
		Sentences: [][]string{
			{"!re", "=name=eth0", "=type=ether"},
			{"!trap", "=message=partial"},
			{"!done", "=ret=ff"},
		},
	}
	first := protocol.Parse(reply)
	second := protocol.Parse(reply)
	assert.Equal(t, first, second)
}

func TestSplitAttribute(t *testing.T) {
	tests := []struct {
		word  string
		key   string
		value string
		ok    bool
	}{
		{"=name=eth0", "name", "eth0", true},
		{"=comment=", "comment", "", true},
		{".id=*1", "id", "*1", true},
		{"=.id=*1", ".id", "*1", true},
		{"=value=a=b", "value", "a=b", true},
		{"!re", "", "", false},
		{"==empty-key", "", "", false},
		{"=nokey", "", "", false},
		{"", "", "", false},
		{"=", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			key, value, ok := protocol.SplitAttribute(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
