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
	"flag"
	"os"
	"time"
)

type GlobalFlags struct {
	Flagset   *flag.FlagSet
	Address   string
	Inventory string
	Device    string
	User      string
	Pass      string
	Legacy    bool
	UseTls    bool
	Attempts  int
	Delay     time.Duration
	Timeout   time.Duration
	Debug     bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Address,
		"address",
		"",
		"device address to connect to in host:port format",
	)
	f.Flagset.StringVar(
		&f.Inventory,
		"inventory",
		"",
		"path to a TOML device inventory file",
	)
	f.Flagset.StringVar(
		&f.Device,
		"device",
		"",
		"name of the inventory device to connect to",
	)
	f.Flagset.StringVar(&f.User, "user", "admin", "login name")
	f.Flagset.StringVar(
		&f.Pass,
		"pass",
		"",
		"login password (prompted when omitted)",
	)
	f.Flagset.BoolVar(
		&f.Legacy,
		"legacy",
		false,
		"use the legacy challenge-response login scheme immediately",
	)
	f.Flagset.BoolVar(&f.UseTls, "tls", false, "enable TLS")
	f.Flagset.IntVar(
		&f.Attempts,
		"attempts",
		1,
		"connection attempts before giving up",
	)
	f.Flagset.DurationVar(
		&f.Delay,
		"delay",
		2*time.Second,
		"delay between connection attempts",
	)
	f.Flagset.DurationVar(
		&f.Timeout,
		"timeout",
		10*time.Second,
		"dial timeout",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}
