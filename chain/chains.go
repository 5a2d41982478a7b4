// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Flux    = "flux"
	Testnet = "testnet"
	Regtest = "regtest"
)

// AddressPrefixes - two byte version prefixes of transparent addresses
type AddressPrefixes struct {
	PubKeyHash [2]byte
	ScriptHash [2]byte
}

var prefixes = map[string]AddressPrefixes{
	Flux: {
		PubKeyHash: [2]byte{0x1c, 0xb8},
		ScriptHash: [2]byte{0x1c, 0xbd},
	},
	Testnet: {
		PubKeyHash: [2]byte{0x1d, 0x25},
		ScriptHash: [2]byte{0x1c, 0xba},
	},
	Regtest: {
		PubKeyHash: [2]byte{0x1d, 0x25},
		ScriptHash: [2]byte{0x1c, 0xba},
	},
}

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Flux, Testnet, Regtest:
		return true
	default:
		return false
	}
}

// Prefixes - address version prefixes for a chain
func Prefixes(name string) (AddressPrefixes, bool) {
	p, ok := prefixes[name]
	return p, ok
}
