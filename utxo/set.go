// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// Set - unspent outputs keyed by outpoint
type Set struct {
	store storage.Store
}

// New - utxo set using the given store
func New(store storage.Store) *Set {
	return &Set{
		store: store,
	}
}

// Get - fetch a coin, nil if spent or never created
func (s *Set) Get(outpoint Outpoint) (*Coin, error) {
	buffer, found, err := s.store.Get(storage.UTXO, outpoint.Pack())
	if nil != err || !found {
		return nil, err
	}
	coin, n, err := CoinFromBytes(buffer)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.ErrInvalidCoinRecord
	}
	return coin, nil
}

// Insert - stage creation of a coin
func (s *Set) Insert(batch *storage.Batch, outpoint Outpoint, coin *Coin) {
	batch.Put(storage.UTXO, outpoint.Pack(), coin.Pack())
}

// Delete - stage spending of a coin
func (s *Set) Delete(batch *storage.Batch, outpoint Outpoint) {
	batch.Delete(storage.UTXO, outpoint.Pack())
}
