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

package auth

import (
	"crypto/md5" // #nosec G501 -- digest is mandated by the legacy login scheme
	"encoding/hex"
	"fmt"
	"io"
)

// ChallengeResponse computes the legacy login response for a
// hex-encoded challenge salt: "00" followed by the lowercase hex MD5 of
// a zero byte, the password bytes, and the decoded salt bytes.
func ChallengeResponse(password string, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf(
			"%w: challenge salt is not valid hex: %s",
			ErrAuth,
			saltHex,
		)
	}
	digest := md5.New() // #nosec G401 -- digest is mandated by the legacy login scheme
	digest.Write([]byte{0})
	io.WriteString(digest, password)
	digest.Write(salt)
	return "00" + hex.EncodeToString(digest.Sum(nil)), nil
}
