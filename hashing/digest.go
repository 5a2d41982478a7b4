// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a 32 byte hash: txid, block hash, anchor, nullifier
//
// stored as little endian byte array
// represented as big endian hex value for print
// represented as big endian hex text for JSON encoding
type Digest [DigestLength]byte

// internal function to return a reversed byte order copy of a digest
func reversed(d Digest) []byte {
	result := make([]byte, DigestLength)
	for i := 0; i < DigestLength; i += 1 {
		result[i] = d[DigestLength-1-i]
	}
	return result
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
//
// the stored version is in little endian, but the output string is big endian
func (digest Digest) String() string {
	return hex.EncodeToString(reversed(digest))
}

// GoString - convert a binary digest to big endian hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA256d:" + hex.EncodeToString(reversed(digest)) + ">"
}

// Scan - convert a big endian hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	d, err := DigestFromString(string(token))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// MarshalText - convert digest to big endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText - convert big endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := DigestFromString(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// DigestFromString - parse the big endian hex form shown by explorers
func DigestFromString(s string) (Digest, error) {
	if hex.EncodedLen(DigestLength) != len(s) {
		return Digest{}, fault.ErrInvalidDigestLength
	}
	h, err := chainhash.NewHashFromStr(s)
	if nil != err {
		return Digest{}, err
	}
	return Digest(*h), nil
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
