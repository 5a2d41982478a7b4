// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// branching factor of the in-memory tree
const memoryDegree = 32

type memoryItem struct {
	key   []byte
	value []byte
}

func lessItem(a memoryItem, b memoryItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// Memory - ordered in-memory backend, used by tests and tools
//
// a batch is applied under the write lock so readers never observe a
// partially applied batch
type Memory struct {
	sync.RWMutex
	tree *btree.BTreeG[memoryItem]
}

// NewMemory - create an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		tree: btree.NewG(memoryDegree, lessItem),
	}
}

// Close - discard the contents, further calls fail
func (m *Memory) Close() error {
	m.Lock()
	m.tree = nil
	m.Unlock()
	return nil
}

// Get - read a value for a given key
func (m *Memory) Get(column Column, key []byte) ([]byte, bool, error) {
	m.RLock()
	defer m.RUnlock()
	if nil == m.tree {
		return nil, false, fault.ErrDatabaseClosed
	}

	item, found := m.tree.Get(memoryItem{key: prefixKey(column, key)})
	if !found {
		return nil, false, nil
	}
	return copyBytes(item.value), true, nil
}

// ScanPrefix - iterate over a key range of one column
//
// results are copied under the read lock and f runs after it is
// released, so f may itself read from the store
func (m *Memory) ScanPrefix(column Column, prefix []byte, f func(key []byte, value []byte) error) error {
	start := prefixKey(column, prefix)

	m.RLock()
	if nil == m.tree {
		m.RUnlock()
		return fault.ErrDatabaseClosed
	}
	elements := make([]Element, 0, 16)
	m.tree.AscendGreaterOrEqual(memoryItem{key: start}, func(item memoryItem) bool {
		if !bytes.HasPrefix(item.key, start) {
			return false
		}
		elements = append(elements, Element{
			Key:   copyBytes(item.key[1:]),
			Value: copyBytes(item.value),
		})
		return true
	})
	m.RUnlock()

	for _, e := range elements {
		if err := f(e.Key, e.Value); nil != err {
			return err
		}
	}
	return nil
}

// FetchFrom - read up to count records of a column starting at a key
func (m *Memory) FetchFrom(column Column, start []byte, count int) ([]Element, error) {
	m.RLock()
	defer m.RUnlock()
	if nil == m.tree {
		return nil, fault.ErrDatabaseClosed
	}

	elements := make([]Element, 0, count)
	m.tree.AscendGreaterOrEqual(memoryItem{key: prefixKey(column, start)}, func(item memoryItem) bool {
		if byte(column) != item.key[0] || len(elements) >= count {
			return false
		}
		elements = append(elements, Element{
			Key:   copyBytes(item.key[1:]),
			Value: copyBytes(item.value),
		})
		return true
	})
	return elements, nil
}

// WriteBatch - apply all operations under the write lock
func (m *Memory) WriteBatch(batch *Batch) error {
	m.Lock()
	defer m.Unlock()
	if nil == m.tree {
		return fault.ErrDatabaseClosed
	}

	for _, op := range batch.Operations() {
		key := prefixKey(op.Column, op.Key)
		if op.Delete {
			m.tree.Delete(memoryItem{key: key})
		} else {
			m.tree.ReplaceOrInsert(memoryItem{
				key:   key,
				value: copyBytes(op.Value),
			})
		}
	}
	return nil
}
