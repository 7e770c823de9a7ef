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

package protocol

import "errors"

// Framing violation errors abort the current read or write and surface
// to the caller; they are never retried inside the protocol layer
var (
	// ErrEncoding indicates a value that cannot be framed for the wire
	ErrEncoding = errors.New("encoding error")

	// ErrProtocol indicates malformed framing from the peer: a truncated
	// word or a stream that ended before a terminal block was observed
	ErrProtocol = errors.New("protocol error")

	// ErrConnectionUnusable indicates the peer sent a fatal block and is
	// about to tear down the connection
	ErrConnectionUnusable = errors.New(
		"fatal reply received: connection is no longer usable",
	)
)
