// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks

// Store - the keyspace and atomicity contract every backend satisfies
//
// the index components only ever see this interface; they never open
// or close the underlying database
type Store interface {
	// Get - read a value; found is false when the key is absent
	Get(column Column, key []byte) (value []byte, found bool, err error)

	// ScanPrefix - call f for each key in the column starting with
	// prefix, in lexicographic key order; the column tag is stripped
	// from the key and both slices are copies owned by f.  An error
	// returned by f stops the scan and is returned unchanged.
	ScanPrefix(column Column, prefix []byte, f func(key []byte, value []byte) error) error

	// WriteBatch - apply all operations atomically and durably
	WriteBatch(batch *Batch) error
}

// Database - a store together with its lifecycle
type Database interface {
	Store
	Close() error
}

// Fetcher - a store that can position a column scan at any key
type Fetcher interface {
	// FetchFrom - up to count elements of a column starting at the
	// first key >= start
	FetchFrom(column Column, start []byte, count int) ([]Element, error)
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Collect - materialise a prefix scan
func Collect(store Store, column Column, prefix []byte) ([]Element, error) {
	results := make([]Element, 0, 16)
	err := store.ScanPrefix(column, prefix, func(key []byte, value []byte) error {
		results = append(results, Element{
			Key:   key,
			Value: value,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return results, nil
}

// internal sentinel used to end a scan early
type stopScan struct{}

func (stopScan) Error() string { return "stop scan" }

// Fetch - return up to count elements of a column starting at the
// first key >= start
func Fetch(store Store, column Column, start []byte, count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if fetcher, ok := store.(Fetcher); ok {
		return fetcher.FetchFrom(column, start, count)
	}

	// plain stores can only scan from the start of the column
	results := make([]Element, 0, count)
	err := store.ScanPrefix(column, nil, func(key []byte, value []byte) error {
		if string(key) < string(start) {
			return nil
		}
		results = append(results, Element{
			Key:   key,
			Value: value,
		})
		if len(results) >= count {
			return stopScan{}
		}
		return nil
	})
	if _, ok := err.(stopScan); ok {
		err = nil
	}
	if nil != err {
		return nil, err
	}
	return results, nil
}
