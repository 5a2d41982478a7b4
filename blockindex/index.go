// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// Index - block index over a store
type Index struct {
	store storage.Store
}

// New - block index using the given store
func New(store storage.Store) *Index {
	return &Index{
		store: store,
	}
}

// Get - fetch and decode the entry for a block
//
// returns nil, nil if the block is not indexed
func (ix *Index) Get(hash hashing.Digest) (*Entry, error) {
	buffer, found, err := ix.store.Get(storage.BlockIndex, hash[:])
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	entry, ok := Unpack(buffer)
	if !ok {
		return nil, fault.ErrInvalidBlockIndexEntry
	}
	return entry, nil
}

// Insert - stage a put of the V2 encoding
func (ix *Index) Insert(batch *storage.Batch, hash hashing.Digest, entry *Entry) {
	batch.Put(storage.BlockIndex, hash[:], entry.Pack())
}

// Delete - stage removal of an entry
func (ix *Index) Delete(batch *storage.Batch, hash hashing.Digest) {
	batch.Delete(storage.BlockIndex, hash[:])
}

// SetStatus - stage a rewrite of an existing entry with a new status
func (ix *Index) SetStatus(batch *storage.Batch, hash hashing.Digest, status Status) error {
	entry, err := ix.Get(hash)
	if nil != err {
		return err
	}
	if nil == entry {
		return fault.ErrBlockNotFound
	}
	entry.Status = status
	ix.Insert(batch, hash, entry)
	return nil
}
