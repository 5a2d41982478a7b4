// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package shielded

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// AnchorSet - commitment tree roots mapped to serialised tree state
type AnchorSet struct {
	store  storage.Store
	column storage.Column
}

// NewAnchorSet - anchors of one pool
func NewAnchorSet(store storage.Store, pool Pool) (*AnchorSet, error) {
	column, err := pool.anchorColumn()
	if nil != err {
		return nil, err
	}
	return &AnchorSet{
		store:  store,
		column: column,
	}, nil
}

// Contains - true if the root is present
func (a *AnchorSet) Contains(root hashing.Digest) (bool, error) {
	_, found, err := a.store.Get(a.column, root[:])
	return found, err
}

// Get - the tree state stored for a root, nil if absent
func (a *AnchorSet) Get(root hashing.Digest) ([]byte, error) {
	tree, found, err := a.store.Get(a.column, root[:])
	if nil != err || !found {
		return nil, err
	}
	return tree, nil
}

// Insert - stage a new root
func (a *AnchorSet) Insert(batch *storage.Batch, root hashing.Digest, tree []byte) {
	batch.Put(a.column, root[:], tree)
}

// Remove - stage removal of a root
func (a *AnchorSet) Remove(batch *storage.Batch, root hashing.Digest) {
	batch.Delete(a.column, root[:])
}
