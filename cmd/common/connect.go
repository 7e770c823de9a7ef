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

package common

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	rosapi "github.com/nettide/gorosapi"
	"golang.org/x/term"
)

// CreateLogger returns a tint-backed slog logger for CLI use
func CreateLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}

// CreateClientConnection dials and logs into a device selected by the
// global flags, either directly by address or through an inventory file
func CreateClientConnection(
	f *GlobalFlags,
	logger *slog.Logger,
) *rosapi.Connection {
	if f.Inventory != "" {
		return connectFromInventory(f, logger)
	}
	if f.Address == "" {
		fmt.Printf("You must specify one of -address or -inventory\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	conn, err := rosapi.NewConnection(
		rosapi.WithAddress(f.Address),
		rosapi.WithCredentials(f.User, promptPassword(f)),
		rosapi.WithLegacyAuth(f.Legacy),
		rosapi.WithTls(f.UseTls),
		rosapi.WithDialTimeout(f.Timeout),
		rosapi.WithLogger(logger),
	)
	if err == nil {
		err = conn.Dial()
	}
	if err != nil {
		fmt.Printf("Connection failed: %s\n", err)
		os.Exit(1)
	}
	return conn
}

func connectFromInventory(
	f *GlobalFlags,
	logger *slog.Logger,
) *rosapi.Connection {
	if f.Device == "" {
		fmt.Printf("You must specify -device when using -inventory\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	inventory, err := rosapi.NewInventoryFromFile(f.Inventory)
	if err != nil {
		fmt.Printf("Loading inventory failed: %s\n", err)
		os.Exit(1)
	}
	manager := rosapi.NewConnectionManager(rosapi.ConnectionManagerConfig{
		Attempts: f.Attempts,
		Delay:    f.Delay,
		Timeout:  f.Timeout,
		Logger:   logger,
	})
	manager.AddDevicesFromInventory(inventory)
	conn, err := manager.Connect(f.Device)
	if err != nil {
		fmt.Printf("Connection failed: %s\n", err)
		os.Exit(1)
	}
	return conn
}

func promptPassword(f *GlobalFlags) string {
	if f.Pass != "" {
		return f.Pass
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", f.User)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Printf("Reading password failed: %s\n", err)
		os.Exit(1)
	}
	return string(passwordBytes)
}
