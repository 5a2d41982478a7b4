// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/shielded"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

// Output - an outpoint and its coin
type Output struct {
	Outpoint utxo.Outpoint
	Coin     *utxo.Coin
}

// Nullifier - a nullifier revealed in one pool
type Nullifier struct {
	Pool      shielded.Pool
	Nullifier hashing.Digest
}

// Anchor - a new commitment tree root and its serialised state
type Anchor struct {
	Pool shielded.Pool
	Root hashing.Digest
	Tree []byte
}

// Changes - everything a validated block does to the chain state
//
// Spent carries the coins as they were before the block spent them,
// they become the block's undo data
type Changes struct {
	Hash       hashing.Digest
	Previous   hashing.Digest
	Height     uint32
	Block      []byte
	TxIds      []hashing.Digest // block order
	Created    []Output
	Spent      []Output
	Nullifiers []Nullifier
	Anchors    []Anchor
}
