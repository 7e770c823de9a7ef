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

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/nettide/gorosapi/cmd/common"
	"github.com/nettide/gorosapi/protocol"
	"github.com/nettide/gorosapi/query"
)

func main() {
	f := common.NewGlobalFlags()
	_ = f.Flagset.Parse(os.Args[1:])
	args := f.Flagset.Args()
	if len(args) == 0 {
		fmt.Printf(
			"Usage: %s [flags] /endpoint/path [=key=value ...] [?key=value ...]\n\n",
			os.Args[0],
		)
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	q, err := query.FromWords(args)
	if err != nil {
		fmt.Printf("Invalid command: %s\n", err)
		os.Exit(1)
	}

	logger := common.CreateLogger(f.Debug)
	conn := common.CreateClientConnection(f, logger)
	defer conn.Close()

	resp, err := conn.Run(q)
	if err != nil {
		if resp != nil && resp.Fatal() {
			fmt.Printf("Device closed the connection: %v\n", resp.Raw)
		} else {
			fmt.Printf("Command failed: %s\n", err)
		}
		os.Exit(1)
	}
	printResponse(resp)
}

func printResponse(resp *protocol.ParsedResponse) {
	for idx, record := range resp.Records {
		if idx > 0 {
			fmt.Println()
		}
		for _, key := range sortedKeys(record) {
			fmt.Printf("%s=%s\n", key, record[key])
		}
	}
	if len(resp.After) > 0 {
		if len(resp.Records) > 0 {
			fmt.Println()
		}
		for _, key := range sortedKeys(resp.After) {
			fmt.Printf("%s=%s\n", key, resp.After[key])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
