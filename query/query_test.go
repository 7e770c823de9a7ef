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

package query_test

import (
	"testing"

	"github.com/nettide/gorosapi/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	q, err := query.Parse("/interface/print =stats ?type=ether")
	require.NoError(t, err)
	assert.Equal(t, "/interface/print", q.Path)
	assert.Equal(
		t,
		[]string{"/interface/print", "=stats", "?type=ether"},
		q.Words(),
	)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing leading slash", "interface/print"},
		{"bad parameter word", "/interface/print bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := query.Parse(tt.command)
			require.ErrorIs(t, err, query.ErrInvalidQuery)
		})
	}
}

func TestFromWords(t *testing.T) {
	q, err := query.FromWords(
		[]string{"/system/identity/set", "=name=edge-1"},
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"/system/identity/set", "=name=edge-1"},
		q.Words(),
	)

	_, err = query.FromWords(nil)
	require.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestBuilders(t *testing.T) {
	q, err := query.New("/ip/address/add")
	require.NoError(t, err)
	q = q.Attribute("address", "192.0.2.1/24").
		Attribute("interface", "ether1")
	assert.Equal(
		t,
		[]string{
			"/ip/address/add",
			"=address=192.0.2.1/24",
			"=interface=ether1",
		},
		q.Words(),
	)
}

func TestWhereAndProplist(t *testing.T) {
	q, err := query.New("/interface/print")
	require.NoError(t, err)
	q = q.Where("type", "ether").Proplist("name", "mtu")
	assert.Equal(
		t,
		[]string{
			"/interface/print",
			"?type=ether",
			"=.proplist=name,mtu",
		},
		q.Words(),
	)
}

func TestWithAttributesDeterministicOrder(t *testing.T) {
	q, err := query.New("/ppp/secret/add")
	require.NoError(t, err)
	q = q.WithAttributes(map[string]string{
		"service":  "pppoe",
		"name":     "user1",
		"password": "pw",
	})
	assert.Equal(
		t,
		[]string{
			"/ppp/secret/add",
			"=name=user1",
			"=password=pw",
			"=service=pppoe",
		},
		q.Words(),
	)
}
