// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/chainstate"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/shielded"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

func sampleUndo() *chainstate.Undo {
	tx := hashing.DoubleSHA256([]byte("tx"))
	return &chainstate.Undo{
		Previous: &chainstate.Tip{
			Hash:   hashing.DoubleSHA256([]byte("parent")),
			Height: 41,
		},
		TxIds: []hashing.Digest{tx},
		Created: []chainstate.Output{
			{Outpoint: utxo.Outpoint{TxId: tx, Index: 0}, Coin: &utxo.Coin{Script: []byte{0x51}}},
		},
		Spent: []chainstate.Output{
			{
				Outpoint: utxo.Outpoint{TxId: hashing.DoubleSHA256([]byte("older")), Index: 3},
				Coin:     &utxo.Coin{Value: 99, Height: 7, Coinbase: true, Script: []byte{0x52, 0x53}},
			},
		},
		Nullifiers: []chainstate.Nullifier{
			{Pool: shielded.Sapling, Nullifier: hashing.SHA256([]byte("n"))},
		},
		Anchors: []chainstate.Anchor{
			{Pool: shielded.Sprout, Root: hashing.SHA256([]byte("r"))},
		},
	}
}

func TestUndoRoundTrip(t *testing.T) {
	u := sampleUndo()

	decoded, err := chainstate.UndoFromBytes(u.Pack())
	require.NoError(t, err, "decode")
	assert.Equal(t, u, decoded, "round trip")
}

func TestUndoWithoutPrevious(t *testing.T) {
	u := &chainstate.Undo{
		TxIds:      []hashing.Digest{},
		Created:    []chainstate.Output{},
		Spent:      []chainstate.Output{},
		Nullifiers: []chainstate.Nullifier{},
		Anchors:    []chainstate.Anchor{},
	}

	decoded, err := chainstate.UndoFromBytes(u.Pack())
	require.NoError(t, err, "decode")
	assert.Equal(t, u, decoded, "round trip")
}

func TestUndoCreatedKeepsScriptOnly(t *testing.T) {
	u := sampleUndo()
	u.Created[0].Coin = &utxo.Coin{Value: 500, Height: 42, Script: []byte{0x51}}

	decoded, err := chainstate.UndoFromBytes(u.Pack())
	require.NoError(t, err, "decode")
	assert.Equal(t, []byte{0x51}, decoded.Created[0].Coin.Script, "script")
	assert.Equal(t, uint64(0), decoded.Created[0].Coin.Value, "value not stored")
}

func TestUndoCorrupt(t *testing.T) {
	record := sampleUndo().Pack()

	for n := 0; n < len(record); n += 1 {
		_, err := chainstate.UndoFromBytes(record[:n])
		assert.Equal(t, fault.ErrInvalidUndoRecord, err, "truncated at: %d", n)
	}

	_, err := chainstate.UndoFromBytes(append(record, 0))
	assert.Equal(t, fault.ErrInvalidUndoRecord, err, "trailing byte")

	bad := append([]byte{}, record...)
	bad[0] = 2
	_, err = chainstate.UndoFromBytes(bad)
	assert.Equal(t, fault.ErrInvalidUndoRecord, err, "version")

	bad = append([]byte{}, record...)
	bad[1] = 7
	_, err = chainstate.UndoFromBytes(bad)
	assert.Equal(t, fault.ErrInvalidUndoRecord, err, "previous flag")
}
