// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txindex

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// Index - transaction index over a store
type Index struct {
	store storage.Store
}

// New - tx index using the given store
func New(store storage.Store) *Index {
	return &Index{
		store: store,
	}
}

// Insert - stage a put
func (ix *Index) Insert(batch *storage.Batch, txId hashing.Digest, location Location) {
	batch.Put(storage.TxIndex, txId[:], location.Pack())
}

// Delete - stage a delete
func (ix *Index) Delete(batch *storage.Batch, txId hashing.Digest) {
	batch.Delete(storage.TxIndex, txId[:])
}

// Get - look up a transaction
//
// found is false if the transaction is not indexed; a record of the
// wrong size is an error
func (ix *Index) Get(txId hashing.Digest) (location Location, found bool, err error) {
	buffer, found, err := ix.store.Get(storage.TxIndex, txId[:])
	if nil != err || !found {
		return Location{}, false, err
	}
	location, ok := LocationFromBytes(buffer)
	if !ok {
		return Location{}, false, fault.ErrInvalidTxIndexEntry
	}
	return location, true, nil
}
