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

import "strings"

// Record is the attribute mapping extracted from a single !re sentence
type Record map[string]string

// ParsedResponse is the structured form of a reply: one record per !re
// sentence in encounter order, trailing attributes from !done/!trap
// sentences in After, and the verbatim words of a !fatal block in Raw.
// Raw is nil unless a fatal block was present.
type ParsedResponse struct {
	Records []Record
	After   map[string]string
	Raw     []string
}

// Fatal returns whether the reply carried a fatal block, meaning the
// peer is about to close the connection
func (p *ParsedResponse) Fatal() bool {
	return p.Raw != nil
}

// Parse converts a reply into a ParsedResponse. Parsing is pure and
// deterministic: the same reply always yields a structurally identical
// result. Words that match neither a block marker nor the attribute
// pattern are skipped rather than failing the parse.
func Parse(reply *Reply) *ParsedResponse {
	resp := &ParsedResponse{
		After: map[string]string{},
	}
	for _, sentence := range reply.Sentences {
		if len(sentence) == 0 {
			continue
		}
		rest := sentence[1:]
		switch sentence[0] {
		case MarkerData:
			record := Record{}
			parseAttributes(rest, record)
			resp.Records = append(resp.Records, record)
		case MarkerTrap:
			parseAttributes(rest, resp.After)
		case MarkerDone:
			parseAttributes(rest, resp.After)
			return resp
		case MarkerFatal:
			// Fatal blocks are never attribute-parsed; surface the
			// sentence words verbatim
			resp.Raw = append([]string{}, sentence...)
			return resp
		default:
			// Attribute words outside any record sentence bind to the
			// trailing metadata
			parseAttributes(sentence, resp.After)
		}
	}
	return resp
}

func parseAttributes(words []string, into map[string]string) {
	for _, word := range words {
		key, value, ok := SplitAttribute(word)
		if !ok {
			continue
		}
		into[key] = value
	}
}

// SplitAttribute splits an attribute word of the form "=key=value" or
// ".key=value" into its key and value. The key is everything between
// the leading marker character and the first "=" that follows it; the
// value is the remainder and may be empty. Deliberately a plain string
// splitter rather than a regular expression so the accepted grammar is
// exactly what this function implements.
func SplitAttribute(word string) (string, string, bool) {
	if len(word) < 2 {
		return "", "", false
	}
	if word[0] != '=' && word[0] != '.' {
		return "", "", false
	}
	key, value, found := strings.Cut(word[1:], "=")
	if !found || key == "" {
		return "", "", false
	}
	return key, value, true
}
