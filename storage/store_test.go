// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// data for various test routines, inserted in this order
var testElements = []stringElement{
	{"key-one", "data-one"},
	{"key-two", "data-two"},
	{"key-three", "data-three"},
	{"key-four", "data-four"},
	{"key-five", "data-five"},
	{"other-six", "data-six"},
}

// this is the expected order of a "key-" prefix scan
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

// a key that must not exist
var nonExistentKey = []byte("/nonexistent")

func TestGetAbsent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		value, found, err := db.Get(storage.Test, nonExistentKey)
		assert.NoError(t, err, "absence must not be an error")
		assert.False(t, found, "absent key found")
		assert.Nil(t, value, "absent key has a value")
	})
}

func TestPutGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		putElements(t, db, storage.Test, testElements)

		for _, e := range testElements {
			value, found, err := db.Get(storage.Test, []byte(e.key))
			require.NoError(t, err, "get: %s", e.key)
			assert.True(t, found, "not found: %s", e.key)
			assert.Equal(t, []byte(e.value), value, "wrong value for: %s", e.key)
		}
	})
}

func TestEmptyValueIsPresent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		batch := storage.NewBatch()
		batch.Put(storage.SaplingNullifiers, []byte("nullifier"), []byte{})
		require.NoError(t, db.WriteBatch(batch), "write")

		value, found, err := db.Get(storage.SaplingNullifiers, []byte("nullifier"))
		require.NoError(t, err, "get")
		assert.True(t, found, "empty value reported as absent")
		assert.Equal(t, 0, len(value), "value not empty")
	})
}

func TestColumnsAreIndependent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		key := []byte("same-key")
		batch := storage.NewBatch()
		batch.Put(storage.TxIndex, key, []byte("tx"))
		batch.Put(storage.BlockIndex, key, []byte("block"))
		require.NoError(t, db.WriteBatch(batch), "write")

		value, found, err := db.Get(storage.TxIndex, key)
		require.NoError(t, err, "get tx")
		assert.True(t, found, "tx not found")
		assert.Equal(t, []byte("tx"), value, "tx value")

		value, found, err = db.Get(storage.BlockIndex, key)
		require.NoError(t, err, "get block")
		assert.True(t, found, "block not found")
		assert.Equal(t, []byte("block"), value, "block value")

		_, found, err = db.Get(storage.UTXO, key)
		require.NoError(t, err, "get utxo")
		assert.False(t, found, "key leaked into another column")
	})
}

func TestScanPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		putElements(t, db, storage.Test, testElements)
		putElements(t, db, storage.TxIndex, []stringElement{{"key-zero", "other column"}})

		elements, err := storage.Collect(db, storage.Test, []byte("key-"))
		require.NoError(t, err, "scan")
		assert.Equal(t, expectedElements, elements, "scan results")

		elements, err = storage.Collect(db, storage.Test, []byte("missing-"))
		require.NoError(t, err, "scan")
		assert.Equal(t, 0, len(elements), "unexpected results")

		elements, err = storage.Collect(db, storage.Test, nil)
		require.NoError(t, err, "scan")
		assert.Equal(t, len(testElements), len(elements), "whole column")
	})
}

func TestScanPrefixStops(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		putElements(t, db, storage.Test, testElements)

		stop := errors.New("stop here")
		n := 0
		err := db.ScanPrefix(storage.Test, []byte("key-"), func(key []byte, value []byte) error {
			n += 1
			if 2 == n {
				return stop
			}
			return nil
		})
		assert.Equal(t, stop, err, "callback error not returned")
		assert.Equal(t, 2, n, "scan did not stop")
	})
}

func TestFetch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		putElements(t, db, storage.Test, testElements)

		elements, err := storage.Fetch(db, storage.Test, []byte("key-one"), 2)
		require.NoError(t, err, "fetch")
		assert.Equal(t, expectedElements[2:4], elements, "fetch results")

		_, err = storage.Fetch(db, storage.Test, nil, 0)
		assert.Equal(t, fault.ErrInvalidCount, err, "zero count accepted")
	})
}

// hides the Fetcher of a backend so Fetch has to scan the column
type scanOnly struct {
	storage.Store
}

func TestFetchFromPosition(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		putElements(t, db, storage.Test, testElements)
		putElements(t, db, storage.Meta, []stringElement{{"key-zero", "meta"}})

		_, ok := db.(storage.Fetcher)
		assert.True(t, ok, "backend cannot seek")

		for _, store := range []storage.Store{db, scanOnly{db}} {
			elements, err := storage.Fetch(store, storage.Test, []byte("key-p"), 10)
			require.NoError(t, err, "fetch")
			assert.Equal(t, makeElements([]stringElement{
				{"key-three", "data-three"},
				{"key-two", "data-two"},
				{"other-six", "data-six"},
			}), elements, "fetch to the end of the column")

			elements, err = storage.Fetch(store, storage.Test, nil, 1)
			require.NoError(t, err, "fetch first")
			assert.Equal(t, expectedElements[:1], elements, "first record")

			elements, err = storage.Fetch(store, storage.Test, []byte("zzz"), 3)
			require.NoError(t, err, "fetch past the end")
			assert.Empty(t, elements, "records past the end")

			elements, err = storage.Fetch(store, storage.Meta, []byte("key-zzz"), 3)
			require.NoError(t, err, "fetch past the end of meta")
			assert.Empty(t, elements, "records of the next column returned")
		}
	})
}

func TestBatchLastOperationWins(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		existing := []byte("existing")
		putElements(t, db, storage.Test, []stringElement{{"existing", "old"}})

		batch := storage.NewBatch()
		batch.Put(storage.Test, []byte("put-delete"), []byte("value"))
		batch.Delete(storage.Test, []byte("put-delete"))
		batch.Delete(storage.Test, []byte("delete-put"))
		batch.Put(storage.Test, []byte("delete-put"), []byte("value"))
		batch.Put(storage.Test, existing, []byte("first"))
		batch.Put(storage.Test, existing, []byte("second"))
		batch.Delete(storage.Test, []byte("never-inserted"))
		require.NoError(t, db.WriteBatch(batch), "write")

		_, found, err := db.Get(storage.Test, []byte("put-delete"))
		require.NoError(t, err, "get")
		assert.False(t, found, "delete after put was ignored")

		value, found, err := db.Get(storage.Test, []byte("delete-put"))
		require.NoError(t, err, "get")
		assert.True(t, found, "put after delete was ignored")
		assert.Equal(t, []byte("value"), value, "wrong value")

		value, _, err = db.Get(storage.Test, existing)
		require.NoError(t, err, "get")
		assert.Equal(t, []byte("second"), value, "later put must win")
	})
}

// readers must see either all or none of a batch
func TestBatchAtomicUnderConcurrentReaders(t *testing.T) {
	const (
		rounds  = 50
		readers = 4
		keys    = 8
	)

	forEachBackend(t, func(t *testing.T, db storage.Database) {
		write := func(n uint32) {
			batch := storage.NewBatch()
			value := make([]byte, 4)
			binary.LittleEndian.PutUint32(value, n)
			for k := 0; k < keys; k += 1 {
				batch.Put(storage.Test, []byte(fmt.Sprintf("atomic-%02d", k)), value)
			}
			require.NoError(t, db.WriteBatch(batch), "write")
		}
		write(0)

		done := make(chan struct{})
		wg := sync.WaitGroup{}
		for r := 0; r < readers; r += 1 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-done:
						return
					default:
					}
					elements, err := storage.Collect(db, storage.Test, []byte("atomic-"))
					if !assert.NoError(t, err, "scan") {
						return
					}
					if !assert.Equal(t, keys, len(elements), "partial batch visible") {
						return
					}
					for _, e := range elements[1:] {
						if !assert.Equal(t, elements[0].Value, e.Value, "mixed batch visible") {
							return
						}
					}
				}
			}()
		}

		for n := uint32(1); n <= rounds; n += 1 {
			write(n)
		}
		close(done)
		wg.Wait()
	})
}

func TestClosed(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db storage.Database) {
		require.NoError(t, db.Close(), "close")
		assert.NoError(t, db.Close(), "second close")

		_, _, err := db.Get(storage.Test, nonExistentKey)
		assert.Equal(t, fault.ErrDatabaseClosed, err, "get after close")

		err = db.ScanPrefix(storage.Test, nil, func(key []byte, value []byte) error { return nil })
		assert.Equal(t, fault.ErrDatabaseClosed, err, "scan after close")

		err = db.WriteBatch(storage.NewBatch())
		assert.Equal(t, fault.ErrDatabaseClosed, err, "write after close")
	})
}
