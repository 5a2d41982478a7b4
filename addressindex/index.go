// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressindex

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/util"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

// Index - address index over a store
type Index struct {
	store storage.Store
}

// New - address index using the given store
func New(store storage.Store) *Index {
	return &Index{
		store: store,
	}
}

// Insert - stage a put of (script, outpoint)
func (ix *Index) Insert(batch *storage.Batch, script []byte, outpoint utxo.Outpoint) {
	batch.Put(storage.AddressIndex, packKey(Normalise(script), outpoint), []byte{})
}

// Delete - stage removal of (script, outpoint)
func (ix *Index) Delete(batch *storage.Batch, script []byte, outpoint utxo.Outpoint) {
	batch.Delete(storage.AddressIndex, packKey(Normalise(script), outpoint))
}

// Scan - all outpoints recorded for a script, in key order
func (ix *Index) Scan(script []byte) ([]utxo.Outpoint, error) {
	prefix := scriptPrefix(Normalise(script))

	outpoints := make([]utxo.Outpoint, 0, 8)
	err := ix.store.ScanPrefix(storage.AddressIndex, prefix, func(key []byte, value []byte) error {
		if len(prefix)+utxo.OutpointSize != len(key) {
			return fault.ErrInvalidAddressKey
		}
		outpoint, err := utxo.OutpointFromBytes(key[len(prefix):])
		if nil != err {
			return err
		}
		outpoints = append(outpoints, outpoint)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return outpoints, nil
}

// ScanAddress - Scan by transparent address
func (ix *Index) ScanAddress(network string, address string) ([]utxo.Outpoint, error) {
	script, err := AddressToScript(network, address)
	if nil != err {
		return nil, err
	}
	return ix.Scan(script)
}

func scriptPrefix(script []byte) []byte {
	prefix := util.ToVarint64(uint64(len(script)))
	return append(prefix, script...)
}

func packKey(script []byte, outpoint utxo.Outpoint) []byte {
	return append(scriptPrefix(script), outpoint.Pack()...)
}
