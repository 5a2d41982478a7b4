// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/shielded"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/util"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

const undoVersion = 1

// Undo - what is needed to disconnect a block
//
// packed as:
//   varint(version)
//   flag ‖ [previous hash(32) ‖ varint(previous height)]
//   varint(n) ‖ n * txid(32)
//   varint(n) ‖ n * (outpoint(36) ‖ varint(len(script)) ‖ script)   created
//   varint(n) ‖ n * (outpoint(36) ‖ coin)                           spent
//   varint(n) ‖ n * (pool(1) ‖ nullifier(32))
//   varint(n) ‖ n * (pool(1) ‖ root(32))
type Undo struct {
	Previous   *Tip
	TxIds      []hashing.Digest
	Created    []Output
	Spent      []Output
	Nullifiers []Nullifier
	Anchors    []Anchor
}

// Pack - encode an undo record
//
// created coins keep only their script, that is all a disconnect needs
func (u *Undo) Pack() []byte {
	buffer := util.ToVarint64(undoVersion)

	if nil == u.Previous {
		buffer = append(buffer, 0)
	} else {
		buffer = append(buffer, 1)
		buffer = append(buffer, u.Previous.Hash[:]...)
		buffer = append(buffer, util.ToVarint64(uint64(u.Previous.Height))...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(u.TxIds)))...)
	for _, txId := range u.TxIds {
		buffer = append(buffer, txId[:]...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(u.Created)))...)
	for _, c := range u.Created {
		buffer = append(buffer, c.Outpoint.Pack()...)
		buffer = append(buffer, util.ToVarint64(uint64(len(c.Coin.Script)))...)
		buffer = append(buffer, c.Coin.Script...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(u.Spent)))...)
	for _, s := range u.Spent {
		buffer = append(buffer, s.Outpoint.Pack()...)
		buffer = append(buffer, s.Coin.Pack()...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(u.Nullifiers)))...)
	for _, n := range u.Nullifiers {
		buffer = append(buffer, byte(n.Pool))
		buffer = append(buffer, n.Nullifier[:]...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(u.Anchors)))...)
	for _, a := range u.Anchors {
		buffer = append(buffer, byte(a.Pool))
		buffer = append(buffer, a.Root[:]...)
	}

	return buffer
}

// UndoFromBytes - decode an undo record
func UndoFromBytes(record []byte) (*Undo, error) {
	r := &reader{record: record}

	if undoVersion != r.varint() {
		return nil, fault.ErrInvalidUndoRecord
	}

	u := &Undo{}

	switch r.flag() {
	case 0:
	case 1:
		u.Previous = &Tip{
			Hash:   r.digest(),
			Height: r.uint32(),
		}
	default:
		return nil, fault.ErrInvalidUndoRecord
	}

	n := r.count(32)
	u.TxIds = make([]hashing.Digest, 0, n)
	for i := 0; i < n; i += 1 {
		u.TxIds = append(u.TxIds, r.digest())
	}

	n = r.count(utxo.OutpointSize + 1)
	u.Created = make([]Output, 0, n)
	for i := 0; i < n; i += 1 {
		outpoint := r.outpoint()
		script := r.bytes(r.count(1))
		u.Created = append(u.Created, Output{
			Outpoint: outpoint,
			Coin:     &utxo.Coin{Script: script},
		})
	}

	n = r.count(utxo.OutpointSize + 3)
	u.Spent = make([]Output, 0, n)
	for i := 0; i < n; i += 1 {
		u.Spent = append(u.Spent, Output{
			Outpoint: r.outpoint(),
			Coin:     r.coin(),
		})
	}

	n = r.count(33)
	u.Nullifiers = make([]Nullifier, 0, n)
	for i := 0; i < n; i += 1 {
		u.Nullifiers = append(u.Nullifiers, Nullifier{
			Pool:      r.pool(),
			Nullifier: r.digest(),
		})
	}

	n = r.count(33)
	u.Anchors = make([]Anchor, 0, n)
	for i := 0; i < n; i += 1 {
		u.Anchors = append(u.Anchors, Anchor{
			Pool: r.pool(),
			Root: r.digest(),
		})
	}

	if r.failed || r.n != len(record) {
		return nil, fault.ErrInvalidUndoRecord
	}
	return u, nil
}

// sequential reader, the first failure sticks and later reads return
// zero values
type reader struct {
	record []byte
	n      int
	failed bool
}

func (r *reader) remaining() int {
	return len(r.record) - r.n
}

func (r *reader) varint() uint64 {
	if r.failed {
		return 0
	}
	value, length := util.FromVarint64(r.record[r.n:])
	if 0 == length {
		r.failed = true
		return 0
	}
	r.n += length
	return value
}

// a count of items, each at least size bytes long
func (r *reader) count(size int) int {
	value := r.varint()
	if value > uint64(r.remaining()/size) {
		r.failed = true
		return 0
	}
	return int(value)
}

func (r *reader) uint32() uint32 {
	value := r.varint()
	if value > 0xffffffff {
		r.failed = true
		return 0
	}
	return uint32(value)
}

func (r *reader) flag() byte {
	b := r.bytes(1)
	if r.failed {
		return 0xff
	}
	return b[0]
}

func (r *reader) bytes(length int) []byte {
	if r.failed || length > r.remaining() {
		r.failed = true
		return nil
	}
	b := make([]byte, length)
	copy(b, r.record[r.n:r.n+length])
	r.n += length
	return b
}

func (r *reader) digest() hashing.Digest {
	var d hashing.Digest
	copy(d[:], r.bytes(len(d)))
	return d
}

func (r *reader) outpoint() utxo.Outpoint {
	b := r.bytes(utxo.OutpointSize)
	if r.failed {
		return utxo.Outpoint{}
	}
	o, err := utxo.OutpointFromBytes(b)
	if nil != err {
		r.failed = true
	}
	return o
}

func (r *reader) coin() *utxo.Coin {
	if r.failed {
		return nil
	}
	c, n, err := utxo.CoinFromBytes(r.record[r.n:])
	if nil != err {
		r.failed = true
		return nil
	}
	r.n += n
	return c
}

func (r *reader) pool() shielded.Pool {
	p := shielded.Pool(r.flag())
	if !p.Valid() {
		r.failed = true
	}
	return p
}
