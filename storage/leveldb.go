// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// LevelDB - production backend, all columns share one LevelDB
// database and are separated by their prefix byte
type LevelDB struct {
	sync.RWMutex
	db       *leveldb.DB
	readOnly bool
}

// every committed batch is synced before WriteBatch returns
var syncWrite = &ldb_opt.WriteOptions{
	Sync: true,
}

// OpenLevelDB - open (or create) a LevelDB database directory
func OpenLevelDB(name string, readOnly bool) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, fault.Backend("leveldb open", err)
	}

	return &LevelDB{
		db:       db,
		readOnly: readOnly,
	}, nil
}

// Close - close the database, further calls fail
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()
	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return fault.Backend("leveldb close", err)
}

// Get - read a value for a given key
func (l *LevelDB) Get(column Column, key []byte) ([]byte, bool, error) {
	l.RLock()
	defer l.RUnlock()
	if nil == l.db {
		return nil, false, fault.ErrDatabaseClosed
	}

	value, err := l.db.Get(prefixKey(column, key), nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, fault.Backend("leveldb get", err)
	}
	return value, true, nil
}

// ScanPrefix - iterate over a key range of one column
//
// the iterator runs on an implicit snapshot so a concurrent batch is
// either completely visible or not visible at all
func (l *LevelDB) ScanPrefix(column Column, prefix []byte, f func(key []byte, value []byte) error) error {
	l.RLock()
	defer l.RUnlock()
	if nil == l.db {
		return fault.ErrDatabaseClosed
	}

	iter := l.db.NewIterator(ldb_util.BytesPrefix(prefixKey(column, prefix)), nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = fault.Backend("leveldb scan", iter.Error())
	}
	return err
}

// FetchFrom - read up to count records of a column starting at a key
func (l *LevelDB) FetchFrom(column Column, start []byte, count int) ([]Element, error) {
	l.RLock()
	defer l.RUnlock()
	if nil == l.db {
		return nil, fault.ErrDatabaseClosed
	}

	limits := ldb_util.BytesPrefix([]byte{byte(column)})
	limits.Start = prefixKey(column, start)
	iter := l.db.NewIterator(limits, nil)

	elements := make([]Element, 0, count)
	for len(elements) < count && iter.Next() {
		elements = append(elements, Element{
			Key:   copyBytes(iter.Key()[1:]),
			Value: copyBytes(iter.Value()),
		})
	}
	iter.Release()
	err := iter.Error()
	if nil != err {
		return nil, fault.Backend("leveldb fetch", err)
	}
	return elements, nil
}

// WriteBatch - commit all operations as a single LevelDB batch
func (l *LevelDB) WriteBatch(batch *Batch) error {
	l.RLock()
	defer l.RUnlock()
	if nil == l.db {
		return fault.ErrDatabaseClosed
	}
	if l.readOnly {
		return fault.ErrReadOnly
	}

	trx := new(leveldb.Batch)
	for _, op := range batch.Operations() {
		if op.Delete {
			trx.Delete(prefixKey(op.Column, op.Key))
		} else {
			trx.Put(prefixKey(op.Column, op.Key), op.Value)
		}
	}
	return fault.Backend("leveldb write", l.db.Write(trx, syncWrite))
}
