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
	"log/slog"
	"sync"
	"time"

	"github.com/jinzhu/copier"
)

// ConnectionManagerConnClosedFunc is a function that takes a device name
// and an optional error
type ConnectionManagerConnClosedFunc func(string, error)

// ConnectionManager tracks a set of managed devices and their open
// connections, and owns the connection-retry policy. The protocol layer
// itself never retries; attempts and delay live here.
type ConnectionManager struct {
	config           ConnectionManagerConfig
	devices          map[string]*DeviceConfig
	connections      map[string]*Connection
	connectionsMutex sync.Mutex
}

// ConnectionManagerConfig is the default dial policy applied to devices
// that don't carry their own
type ConnectionManagerConfig struct {
	Attempts       int
	Delay          time.Duration
	Timeout        time.Duration
	ConnClosedFunc ConnectionManagerConnClosedFunc
	Logger         *slog.Logger
}

// NewConnectionManager returns a manager with the provided defaults
func NewConnectionManager(cfg ConnectionManagerConfig) *ConnectionManager {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ConnectionManager{
		config:      cfg,
		devices:     make(map[string]*DeviceConfig),
		connections: make(map[string]*Connection),
	}
}

// AddDevice registers a device with the manager, replacing any existing
// entry with the same name
func (c *ConnectionManager) AddDevice(device DeviceConfig) {
	c.connectionsMutex.Lock()
	defer c.connectionsMutex.Unlock()
	tmpDevice := device
	c.devices[device.Name] = &tmpDevice
}

// AddDevicesFromInventory registers every device from an inventory file
func (c *ConnectionManager) AddDevicesFromInventory(
	inventory *InventoryConfig,
) {
	for _, device := range inventory.Devices {
		c.AddDevice(device)
	}
}

// Device returns a snapshot of the named device entry
func (c *ConnectionManager) Device(name string) (DeviceConfig, bool) {
	c.connectionsMutex.Lock()
	defer c.connectionsMutex.Unlock()
	device, ok := c.devices[name]
	if !ok {
		return DeviceConfig{}, false
	}
	return *device, true
}

// Connect dials and logs into the named device, applying the device's
// (or the manager's) attempts/delay policy. On success the connection
// is tracked until closed. If the login negotiator fell back to the
// legacy scheme, the device entry is updated so future connects skip
// scheme detection.
func (c *ConnectionManager) Connect(name string) (*Connection, error) {
	c.connectionsMutex.Lock()
	device, ok := c.devices[name]
	if !ok {
		c.connectionsMutex.Unlock()
		return nil, fmt.Errorf("unknown device %s", name)
	}
	// Snapshot the device entry so dial attempts work from a stable copy
	var dialDevice DeviceConfig
	if err := copier.Copy(&dialDevice, device); err != nil {
		c.connectionsMutex.Unlock()
		return nil, err
	}
	c.connectionsMutex.Unlock()

	attempts := dialDevice.Attempts
	if attempts <= 0 {
		attempts = c.config.Attempts
	}
	delay := dialDevice.Delay.Duration
	if delay == 0 {
		delay = c.config.Delay
	}
	timeout := dialDevice.Timeout.Duration
	if timeout == 0 {
		timeout = c.config.Timeout
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && delay > 0 {
			time.Sleep(delay)
		}
		conn, err := NewConnection(
			WithAddress(dialDevice.Address()),
			WithCredentials(dialDevice.User, dialDevice.Pass),
			WithLegacyAuth(dialDevice.Legacy),
			WithTls(dialDevice.Ssl),
			WithDialTimeout(timeout),
			WithLogger(c.config.Logger),
		)
		if err != nil {
			return nil, err
		}
		if err := conn.Dial(); err != nil {
			lastErr = err
			c.config.Logger.Debug(
				"connection attempt failed",
				"device", name,
				"attempt", attempt,
				"error", err,
			)
			continue
		}
		c.trackConnection(name, conn)
		return conn, nil
	}
	return nil, fmt.Errorf(
		"connecting to %s failed after %d attempts: %w",
		name,
		attempts,
		lastErr,
	)
}

// CloseConnection closes and forgets the tracked connection for the
// named device
func (c *ConnectionManager) CloseConnection(name string) {
	c.connectionsMutex.Lock()
	conn := c.connections[name]
	delete(c.connections, name)
	c.connectionsMutex.Unlock()
	if conn != nil {
		err := conn.Close()
		if c.config.ConnClosedFunc != nil {
			c.config.ConnClosedFunc(name, err)
		}
	}
}

// Connection returns the tracked connection for the named device, if any
func (c *ConnectionManager) Connection(name string) *Connection {
	c.connectionsMutex.Lock()
	defer c.connectionsMutex.Unlock()
	return c.connections[name]
}

func (c *ConnectionManager) trackConnection(name string, conn *Connection) {
	c.connectionsMutex.Lock()
	defer c.connectionsMutex.Unlock()
	c.connections[name] = conn
	// Persist the legacy hint discovered during login
	if device, ok := c.devices[name]; ok && conn.LegacyAuth() {
		device.Legacy = true
	}
}
