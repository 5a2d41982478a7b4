// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Hash160Length - number of bytes in a hash160 result
const Hash160Length = ripemd160.Size

// SHA256 - single round of SHA-256
func SHA256(data []byte) Digest {
	return sha256.Sum256(data)
}

// DoubleSHA256 - SHA-256 applied twice, as used for transaction and
// block identifiers
func DoubleSHA256(data []byte) Digest {
	return Digest(chainhash.DoubleHashH(data))
}

// Hash160 - RIPEMD-160 of the SHA-256 of the data
//
// this must stay the same procedure used for address derivation so
// that wallet addresses and address index keys always agree
func Hash160(data []byte) [Hash160Length]byte {
	s := sha256.Sum256(data)

	r := ripemd160.New()
	r.Write(s[:]) // a hash.Hash Write never returns an error

	var result [Hash160Length]byte
	copy(result[:], r.Sum(nil))
	return result
}
