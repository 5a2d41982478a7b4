// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

const (
	testingDirName = "testing"
)

// configure for testing
func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	removeFiles()
}

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// a backend under test
type backend struct {
	name string
	open func(t *testing.T, dir string) storage.Database
}

var backends = []backend{
	{
		name: storage.BackendMemory,
		open: func(t *testing.T, dir string) storage.Database {
			return storage.NewMemory()
		},
	},
	{
		name: storage.BackendLevelDB,
		open: func(t *testing.T, dir string) storage.Database {
			db, err := storage.OpenLevelDB(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
			require.NoError(t, err, "open leveldb")
			return db
		},
	},
	{
		name: storage.BackendBolt,
		open: func(t *testing.T, dir string) storage.Database {
			db, err := storage.OpenBolt(filepath.Join(dir, "test.bolt"), storage.ReadWrite)
			require.NoError(t, err, "open bolt")
			return db
		},
	},
}

// run a test against every backend
func forEachBackend(t *testing.T, f func(t *testing.T, db storage.Database)) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			db := b.open(t, t.TempDir())
			defer db.Close()
			f(t, db)
		})
	}
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// write a set of elements in one batch
func putElements(t *testing.T, db storage.Store, column storage.Column, elements []stringElement) {
	batch := storage.NewBatch()
	for _, e := range elements {
		batch.Put(column, []byte(e.key), []byte(e.value))
	}
	require.NoError(t, db.WriteBatch(batch), "write batch")
}
