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

import (
	"fmt"
	"io"
)

// Block markers are the first word of sentences that carry reply
// framing semantics
const (
	MarkerData  = "!re"
	MarkerTrap  = "!trap"
	MarkerDone  = "!done"
	MarkerFatal = "!fatal"
)

// ReadSentence reads words from the stream until the zero-length
// terminator word, which is consumed but not returned. It imposes no
// sentence-level length limit and blocks only as long as the underlying
// stream does.
func ReadSentence(r io.Reader) ([]string, error) {
	var words []string
	for {
		word, err := DecodeWord(r)
		if err != nil {
			return nil, err
		}
		if len(word) == 0 {
			return words, nil
		}
		words = append(words, string(word))
	}
}

// WriteSentence frames the given words and the sentence terminator and
// writes them to the stream as a single buffer. An empty word is
// rejected since it would terminate the sentence early on the wire.
func WriteSentence(w io.Writer, words []string) error {
	var buf []byte
	for _, word := range words {
		if len(word) == 0 {
			return fmt.Errorf(
				"%w: empty word in sentence",
				ErrEncoding,
			)
		}
		framed, err := EncodeWord([]byte(word))
		if err != nil {
			return err
		}
		buf = append(buf, framed...)
	}
	// Sentence terminator
	buf = append(buf, 0)
	if _, err := w.Write(buf); err != nil {
		return err
	}
	return nil
}
