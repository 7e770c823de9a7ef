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

package rosapi_test

import (
	"testing"
	"time"

	rosapi "github.com/nettide/gorosapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInventory = `
[[device]]
name = "edge-1"
host = "192.0.2.1"
user = "admin"
pass = "hunter2"
attempts = 3
delay = "2s"
timeout = "5s"

[[device]]
name = "edge-2"
host = "192.0.2.2"
port = 18729
user = "admin"
pass = "hunter2"
legacy = true
ssl = true
`

func TestInventoryFromString(t *testing.T) {
	inventory, err := rosapi.NewInventoryFromString(testInventory)
	require.NoError(t, err)
	require.Len(t, inventory.Devices, 2)

	edge1, ok := inventory.Device("edge-1")
	require.True(t, ok)
	assert.Equal(t, "192.0.2.1", edge1.Host)
	assert.Equal(t, 3, edge1.Attempts)
	assert.Equal(t, 2*time.Second, edge1.Delay.Duration)
	assert.Equal(t, 5*time.Second, edge1.Timeout.Duration)
	assert.False(t, edge1.Legacy)
	// Default plain API port applied
	assert.Equal(t, "192.0.2.1:8728", edge1.Address())

	edge2, ok := inventory.Device("edge-2")
	require.True(t, ok)
	assert.True(t, edge2.Legacy)
	assert.True(t, edge2.Ssl)
	assert.Equal(t, "192.0.2.2:18729", edge2.Address())

	_, ok = inventory.Device("missing")
	assert.False(t, ok)
}

func TestInventoryDefaultTlsPort(t *testing.T) {
	device := rosapi.DeviceConfig{Host: "192.0.2.3", Ssl: true}
	assert.Equal(t, "192.0.2.3:8729", device.Address())
}

func TestInventoryValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			"missing name",
			"[[device]]\nhost = \"192.0.2.1\"\n",
		},
		{
			"missing host",
			"[[device]]\nname = \"edge-1\"\n",
		},
		{
			"duplicate name",
			"[[device]]\nname = \"edge-1\"\nhost = \"192.0.2.1\"\n" +
				"[[device]]\nname = \"edge-1\"\nhost = \"192.0.2.2\"\n",
		},
		{
			"bad duration",
			"[[device]]\nname = \"edge-1\"\nhost = \"192.0.2.1\"\ndelay = \"soon\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rosapi.NewInventoryFromString(tt.data)
			require.Error(t, err)
		})
	}
}
