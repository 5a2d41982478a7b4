// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"strings"
)

// Operation - one buffered mutation of a batch
type Operation struct {
	Column Column
	Key    []byte
	Value  []byte
	Delete bool
}

// Batch - an ordered sequence of puts and deletes applied atomically
// by Store.WriteBatch
//
// operations are applied in order, so a later operation on the same
// column/key overrides an earlier one. A batch is not safe for
// concurrent use; it is built by a single writer then committed.
type Batch struct {
	operations []Operation
}

// NewBatch - create an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Put - stage a key/value write
//
// key and value are copied so the caller may reuse its buffers
func (b *Batch) Put(column Column, key []byte, value []byte) {
	b.operations = append(b.operations, Operation{
		Column: column,
		Key:    copyBytes(key),
		Value:  copyBytes(value),
	})
}

// Delete - stage the removal of a key, deleting an absent key is a no-op
func (b *Batch) Delete(column Column, key []byte) {
	b.operations = append(b.operations, Operation{
		Column: column,
		Key:    copyBytes(key),
		Delete: true,
	})
}

// Len - number of staged operations
func (b *Batch) Len() int {
	return len(b.operations)
}

// Reset - discard all staged operations
func (b *Batch) Reset() {
	b.operations = b.operations[:0]
}

// Operations - the staged operations in the order they were added
func (b *Batch) Operations() []Operation {
	return b.operations
}

// Dump - readable form of the batch for debug logging
func (b *Batch) Dump() string {
	s := strings.Builder{}
	for i, op := range b.operations {
		if op.Delete {
			fmt.Fprintf(&s, "%d: DEL %s %x\n", i, op.Column, op.Key)
		} else {
			fmt.Fprintf(&s, "%d: PUT %s %x → %x\n", i, op.Column, op.Key, op.Value)
		}
	}
	return s.String()
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
