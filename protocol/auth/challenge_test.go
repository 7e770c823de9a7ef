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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeResponse(t *testing.T) {
	tests := []struct {
		name     string
		password string
		salt     string
		expected string
	}{
		{
			name:     "known vector",
			password: "test",
			salt:     "abcd1234",
			expected: "0055dd03b13d3feb81d572fefce9ec80e9",
		},
		{
			name:     "odd salt bytes",
			password: "secret",
			salt:     "00ff10",
			expected: "00a4b94a89a25cff6b82fea91c9df58448",
		},
		{
			name:     "empty password",
			password: "",
			salt:     "aa",
			expected: "000e863bee82aab9deb1022af6598b9fc9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := ChallengeResponse(tt.password, tt.salt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, response)
			// Deterministic
			again, err := ChallengeResponse(tt.password, tt.salt)
			require.NoError(t, err)
			assert.Equal(t, response, again)
		})
	}
}

func TestChallengeResponseBadSalt(t *testing.T) {
	_, err := ChallengeResponse("test", "not-hex")
	require.ErrorIs(t, err, ErrAuth)
}
