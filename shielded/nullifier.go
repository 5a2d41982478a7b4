// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package shielded

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// NullifierSet - revealed nullifiers, presence only
type NullifierSet struct {
	store  storage.Store
	column storage.Column
}

// NewNullifierSet - nullifiers of one pool
func NewNullifierSet(store storage.Store, pool Pool) (*NullifierSet, error) {
	column, err := pool.nullifierColumn()
	if nil != err {
		return nil, err
	}
	return &NullifierSet{
		store:  store,
		column: column,
	}, nil
}

// Contains - true if the nullifier has been revealed
func (n *NullifierSet) Contains(nullifier hashing.Digest) (bool, error) {
	_, found, err := n.store.Get(n.column, nullifier[:])
	return found, err
}

// Insert - stage a nullifier, inserting one already present is harmless
func (n *NullifierSet) Insert(batch *storage.Batch, nullifier hashing.Digest) {
	batch.Put(n.column, nullifier[:], []byte{})
}

// Remove - stage removal of a nullifier
func (n *NullifierSet) Remove(batch *storage.Batch, nullifier hashing.Digest) {
	batch.Delete(n.column, nullifier[:])
}
