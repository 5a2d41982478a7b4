// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressindex

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/chain"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/util"
)

// transparent address: version(2) ‖ hash160(20) ‖ checksum(4)
const (
	versionLength  = 2
	checksumLength = 4
	addressLength  = versionLength + hashing.Hash160Length + checksumLength
)

// AddressToScript - the output script an address pays to
func AddressToScript(network string, address string) ([]byte, error) {
	prefixes, ok := chain.Prefixes(network)
	if !ok {
		return nil, fault.ErrInvalidChain
	}

	decoded := util.FromBase58(address)
	if addressLength != len(decoded) {
		return nil, fault.ErrInvalidAddress
	}

	n := addressLength - checksumLength
	checksum := hashing.DoubleSHA256(decoded[:n])
	if !bytes.Equal(checksum[:checksumLength], decoded[n:]) {
		return nil, fault.ErrInvalidAddressChecksum
	}

	hash := decoded[versionLength:n]
	switch {
	case bytes.Equal(prefixes.PubKeyHash[:], decoded[:versionLength]):
		return payToPubKeyHash(hash)
	case bytes.Equal(prefixes.ScriptHash[:], decoded[:versionLength]):
		return payToScriptHash(hash)
	default:
		return nil, fault.ErrInvalidAddress
	}
}

// ScriptToAddress - the address of a pay-to-pubkey, pay-to-pubkey-hash
// or pay-to-script-hash output
func ScriptToAddress(network string, script []byte) (string, error) {
	prefixes, ok := chain.Prefixes(network)
	if !ok {
		return "", fault.ErrInvalidChain
	}

	script = Normalise(script)

	var version []byte
	var hash []byte
	switch txscript.GetScriptClass(script) {
	case txscript.PubKeyHashTy:
		version = prefixes.PubKeyHash[:]
		hash = script[3:23]
	case txscript.ScriptHashTy:
		version = prefixes.ScriptHash[:]
		hash = script[2:22]
	default:
		return "", fault.ErrUnsupportedScriptForIndex
	}

	buffer := make([]byte, 0, addressLength)
	buffer = append(buffer, version...)
	buffer = append(buffer, hash...)
	checksum := hashing.DoubleSHA256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)

	return util.ToBase58(buffer), nil
}
