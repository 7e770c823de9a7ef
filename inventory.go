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
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Default API ports for plain and TLS connections
const (
	DefaultPort    uint = 8728
	DefaultTlsPort uint = 8729
)

// InventoryConfig represents a device inventory file: the set of
// managed devices with their addresses and credentials
type InventoryConfig struct {
	Devices []DeviceConfig `toml:"device"`
}

// DeviceConfig describes one managed device
type DeviceConfig struct {
	Name     string   `toml:"name"`
	Host     string   `toml:"host"`
	Port     uint     `toml:"port"`
	User     string   `toml:"user"`
	Pass     string   `toml:"pass"`
	Legacy   bool     `toml:"legacy"`
	Ssl      bool     `toml:"ssl"`
	Attempts int      `toml:"attempts"`
	Delay    Duration `toml:"delay"`
	Timeout  Duration `toml:"timeout"`
}

// Address returns the host:port dial address, applying the default port
// for the configured transport when none is set
func (d DeviceConfig) Address() string {
	port := d.Port
	if port == 0 {
		if d.Ssl {
			port = DefaultTlsPort
		} else {
			port = DefaultPort
		}
	}
	return net.JoinHostPort(d.Host, strconv.FormatUint(uint64(port), 10))
}

// Duration wraps time.Duration for TOML text decoding ("5s", "250ms")
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// NewInventoryFromFile loads a device inventory from a TOML file
func NewInventoryFromFile(path string) (*InventoryConfig, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	inventory := &InventoryConfig{}
	if _, err := toml.NewDecoder(dataFile).Decode(inventory); err != nil {
		return nil, err
	}
	if err := inventory.validate(); err != nil {
		return nil, err
	}
	return inventory, nil
}

// NewInventoryFromString loads a device inventory from TOML data
func NewInventoryFromString(data string) (*InventoryConfig, error) {
	inventory := &InventoryConfig{}
	if _, err := toml.Decode(data, inventory); err != nil {
		return nil, err
	}
	if err := inventory.validate(); err != nil {
		return nil, err
	}
	return inventory, nil
}

// Device returns the named device entry, if present
func (i *InventoryConfig) Device(name string) (DeviceConfig, bool) {
	for _, device := range i.Devices {
		if device.Name == name {
			return device, true
		}
	}
	return DeviceConfig{}, false
}

func (i *InventoryConfig) validate() error {
	seen := map[string]bool{}
	for _, device := range i.Devices {
		if device.Name == "" {
			return fmt.Errorf("inventory device with empty name")
		}
		if device.Host == "" {
			return fmt.Errorf(
				"inventory device %s has no host",
				device.Name,
			)
		}
		if seen[device.Name] {
			return fmt.Errorf(
				"duplicate inventory device name %s",
				device.Name,
			)
		}
		seen[device.Name] = true
	}
	return nil
}
