// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressindex

import (
	"github.com/btcsuite/btcd/txscript"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
)

// Normalise - rewrite a pay-to-pubkey script as pay-to-pubkey-hash,
// any other script is returned unchanged
//
// pay-to-pubkey is recognised by shape alone, the key bytes are not
// checked to be a valid curve point encoding
func Normalise(script []byte) []byte {
	if !isPayToPubKey(script) {
		return script
	}

	publicKey := script[1 : len(script)-1]
	hash := hashing.Hash160(publicKey)

	p2pkh, err := payToPubKeyHash(hash[:])
	if nil != err {
		return script
	}
	return p2pkh
}

// <push 33> <pubkey> OP_CHECKSIG or <push 65> <pubkey> OP_CHECKSIG
func isPayToPubKey(script []byte) bool {
	switch len(script) {
	case 35:
		if txscript.OP_DATA_33 != script[0] {
			return false
		}
	case 67:
		if txscript.OP_DATA_65 != script[0] {
			return false
		}
	default:
		return false
	}
	return txscript.OP_CHECKSIG == script[len(script)-1]
}

// OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG
func payToPubKeyHash(hash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(hash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// OP_HASH160 <hash> OP_EQUAL
func payToScriptHash(hash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(hash).
		AddOp(txscript.OP_EQUAL).
		Script()
}
