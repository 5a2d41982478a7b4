// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// FromBase58 - decode a base58 string, empty result on error
func FromBase58(s string) []byte {
	buffer, err := base58.Decode(s)
	if nil != err {
		return []byte{}
	}
	return buffer
}

// ToBase58 - encode bytes as base58
func ToBase58(buffer []byte) string {
	return base58.Encode(buffer)
}
