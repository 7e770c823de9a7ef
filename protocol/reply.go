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
	"errors"
	"fmt"
	"io"
)

// Reply is the ordered sequence of sentences read for one request, up to
// and including the sentence carrying the terminal block marker
type Reply struct {
	Sentences [][]string
}

// Reply reader states
type replyState int

const (
	replyStateSeekingTerminal replyState = iota
	replyStateInTerminalSentence
	replyStateDone
)

func (s replyState) String() string {
	switch s {
	case replyStateSeekingTerminal:
		return "SeekingTerminal"
	case replyStateInTerminalSentence:
		return "InTerminalSentence"
	case replyStateDone:
		return "Done"
	}
	return "Unknown"
}

// ReadReply reads sentences from the stream until a sentence carrying a
// terminal block marker (!done or !fatal) has itself been fully read,
// terminator included. The stream ending before a terminal sentence is
// observed means the peer closed the connection mid-reply, which is a
// protocol error.
func ReadReply(r io.Reader) (*Reply, error) {
	reply := &Reply{}
	state := replyStateSeekingTerminal
	var sentence []string
	for state != replyStateDone {
		word, err := DecodeWord(r)
		if err != nil {
			if errors.Is(err, ErrProtocol) {
				return nil, fmt.Errorf(
					"%w in state %s",
					err,
					state,
				)
			}
			return nil, err
		}
		if len(word) == 0 {
			// Sentence boundary
			reply.Sentences = append(reply.Sentences, sentence)
			sentence = nil
			if state == replyStateInTerminalSentence {
				state = replyStateDone
			}
			continue
		}
		if len(sentence) == 0 {
			switch string(word) {
			case MarkerDone, MarkerFatal:
				state = replyStateInTerminalSentence
			}
		}
		sentence = append(sentence, string(word))
	}
	return reply, nil
}

// Words returns the flat ordered word list of the reply without any
// attribute splitting. The negotiator uses this form to avoid
// interpreting challenge payloads as key/value pairs.
func (r *Reply) Words() []string {
	var words []string
	for _, sentence := range r.Sentences {
		words = append(words, sentence...)
	}
	return words
}
