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

// Package protocol implements the RouterOS API wire format: length-prefixed
// words assembled into sentences, sentences assembled into replies, and
// structured parsing of reply attributes.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MaxWordLength is the largest content length the five-byte prefix
	// form can carry
	MaxWordLength = 0xFFFFFFFF

	// Prefix form boundaries. A length below a boundary uses the
	// corresponding shorter encoding
	lenBound1 = 0x80       // 1-byte prefix
	lenBound2 = 0x4000     // 2-byte prefix
	lenBound3 = 0x200000   // 3-byte prefix
	lenBound4 = 0x10000000 // 4-byte prefix
)

// encodeLength returns the wire prefix for a word of the given length.
// The prefix uses a UTF-8-like continuation scheme: the count of leading
// one bits in the first byte selects the total prefix size, and the
// remaining bits carry the length value big-endian.
func encodeLength(length int) ([]byte, error) {
	switch {
	case length < 0:
		return nil, fmt.Errorf(
			"%w: negative word length %d",
			ErrEncoding,
			length,
		)
	case length < lenBound1:
		return []byte{byte(length)}, nil
	case length < lenBound2:
		v := uint16(length) | 0x8000
		return binary.BigEndian.AppendUint16(nil, v), nil
	case length < lenBound3:
		v := uint32(length) | 0xC00000
		return binary.BigEndian.AppendUint32(nil, v)[1:], nil
	case length < lenBound4:
		v := uint32(length) | 0xE0000000
		return binary.BigEndian.AppendUint32(nil, v), nil
	case length <= MaxWordLength:
		buf := make([]byte, 5)
		buf[0] = 0xF0
		binary.BigEndian.PutUint32(buf[1:], uint32(length))
		return buf, nil
	default:
		return nil, fmt.Errorf(
			"%w: word length %d exceeds maximum of %d",
			ErrEncoding,
			length,
			MaxWordLength,
		)
	}
}

// decodeLength reads a word length prefix from the stream. The number of
// continuation bytes is determined from the top bits of the first byte,
// inverting the scheme used by encodeLength.
func decodeLength(r io.Reader) (int, error) {
	first, err := readByte(r)
	if err != nil {
		return 0, err
	}
	switch {
	case first&0x80 == 0:
		return int(first), nil
	case first&0xC0 == 0x80:
		rest, err := readBytes(r, 1)
		if err != nil {
			return 0, err
		}
		return int(first&0x3F)<<8 | int(rest[0]), nil
	case first&0xE0 == 0xC0:
		rest, err := readBytes(r, 2)
		if err != nil {
			return 0, err
		}
		return int(first&0x1F)<<16 | int(rest[0])<<8 | int(rest[1]), nil
	case first&0xF0 == 0xE0:
		rest, err := readBytes(r, 3)
		if err != nil {
			return 0, err
		}
		return int(first&0x0F)<<24 |
			int(rest[0])<<16 |
			int(rest[1])<<8 |
			int(rest[2]), nil
	case first == 0xF0:
		rest, err := readBytes(r, 4)
		if err != nil {
			return 0, err
		}
		return int(binary.BigEndian.Uint32(rest)), nil
	default:
		// 0xF1-0xFF are reserved control bytes
		return 0, fmt.Errorf(
			"%w: reserved length prefix byte 0x%02x",
			ErrProtocol,
			first,
		)
	}
}

// EncodeWord frames a single word for the wire: length prefix followed by
// the raw content bytes. A zero-length word encodes as the single zero
// byte used as the sentence terminator.
func EncodeWord(word []byte) ([]byte, error) {
	prefix, err := encodeLength(len(word))
	if err != nil {
		return nil, err
	}
	return append(prefix, word...), nil
}

// DecodeWord reads a single word from the stream. It returns an empty
// slice for the zero-length terminator word. The declared length must be
// satisfied exactly; a short read is a protocol error.
func DecodeWord(r io.Reader) ([]byte, error) {
	length, err := decodeLength(r)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return []byte{}, nil
	}
	word := make([]byte, length)
	// ReadFull guarantees the declared number of bytes or an error
	if _, err := io.ReadFull(r, word); err != nil {
		return nil, fmt.Errorf(
			"%w: stream ended before declared word length %d was satisfied",
			ErrProtocol,
			length,
		)
	}
	return word, nil
}

func readByte(r io.Reader) (byte, error) {
	buf, err := readBytes(r, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf(
			"%w: stream ended inside word length prefix",
			ErrProtocol,
		)
	}
	return buf, nil
}
