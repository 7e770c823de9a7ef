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

// Package query normalizes user-supplied commands into the structured
// form the protocol core consumes: an endpoint path followed by an
// ordered list of parameter words. The core never sees free-form input.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid query")

// Query is a single API command: the endpoint path plus its parameter
// words, already in wire form ("=key=value", "?key=value", ...)
type Query struct {
	Path   string
	Params []string
}

// New returns a query for the given endpoint path with optional
// already-formed parameter words
func New(path string, params ...string) (Query, error) {
	q := Query{Path: path, Params: params}
	if err := q.validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Parse builds a query from a whitespace-separated command string, e.g.
// "/interface/print =stats ?type=ether"
func Parse(s string) (Query, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Query{}, fmt.Errorf("%w: empty command", ErrInvalidQuery)
	}
	return New(fields[0], fields[1:]...)
}

// FromWords builds a query from an already-split word list, first word
// being the endpoint path
func FromWords(words []string) (Query, error) {
	if len(words) == 0 {
		return Query{}, fmt.Errorf("%w: empty command", ErrInvalidQuery)
	}
	return New(words[0], words[1:]...)
}

// Attribute appends an "=key=value" parameter word
func (q Query) Attribute(key string, value string) Query {
	q.Params = append(q.Params, "="+key+"="+value)
	return q
}

// Where appends a "?key=value" filter word used by print-style commands
func (q Query) Where(key string, value string) Query {
	q.Params = append(q.Params, "?"+key+"="+value)
	return q
}

// Proplist appends an "=.proplist=" word restricting which properties
// the peer returns
func (q Query) Proplist(properties ...string) Query {
	q.Params = append(
		q.Params,
		"=.proplist="+strings.Join(properties, ","),
	)
	return q
}

// WithAttributes appends attribute words from a map in sorted key order
// so the resulting sentence is deterministic
func (q Query) WithAttributes(attributes map[string]string) Query {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		q = q.Attribute(key, attributes[key])
	}
	return q
}

// Words returns the ordered sentence words for the command
func (q Query) Words() []string {
	words := make([]string, 0, len(q.Params)+1)
	words = append(words, q.Path)
	words = append(words, q.Params...)
	return words
}

func (q Query) validate() error {
	if !strings.HasPrefix(q.Path, "/") {
		return fmt.Errorf(
			"%w: endpoint path %q must begin with '/'",
			ErrInvalidQuery,
			q.Path,
		)
	}
	for _, param := range q.Params {
		if param == "" {
			return fmt.Errorf(
				"%w: empty parameter word",
				ErrInvalidQuery,
			)
		}
		switch param[0] {
		case '=', '?', '.':
			// wire parameter forms
		default:
			return fmt.Errorf(
				"%w: parameter word %q must begin with '=', '?' or '.'",
				ErrInvalidQuery,
				param,
			)
		}
	}
	return nil
}
