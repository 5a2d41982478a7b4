// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// how long to wait for the file lock held by another process
const boltLockTimeout = 2 * time.Second

// Bolt - alternative persistent backend with one bucket per column
type Bolt struct {
	sync.RWMutex
	db       *bolt.DB
	readOnly bool
}

// OpenBolt - open (or create) a bolt database file
func OpenBolt(name string, readOnly bool) (*Bolt, error) {
	opt := &bolt.Options{
		Timeout:  boltLockTimeout,
		ReadOnly: readOnly,
	}
	db, err := bolt.Open(name, 0600, opt)
	if nil != err {
		return nil, fault.Backend("bolt open", err)
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			for _, column := range Columns {
				if _, err := tx.CreateBucketIfNotExists(bucketName(column)); nil != err {
					return err
				}
			}
			return nil
		})
		if nil != err {
			db.Close()
			return nil, fault.Backend("bolt create buckets", err)
		}
	}

	return &Bolt{
		db:       db,
		readOnly: readOnly,
	}, nil
}

func bucketName(column Column) []byte {
	return []byte{byte(column)}
}

// Close - close the database, further calls fail
func (b *Bolt) Close() error {
	b.Lock()
	defer b.Unlock()
	if nil == b.db {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return fault.Backend("bolt close", err)
}

// Get - read a value for a given key
//
// a cursor is used so that an empty value is still reported as found
func (b *Bolt) Get(column Column, key []byte) ([]byte, bool, error) {
	b.RLock()
	defer b.RUnlock()
	if nil == b.db {
		return nil, false, fault.ErrDatabaseClosed
	}

	var value []byte
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(column))
		if nil == bucket {
			return nil
		}
		k, v := bucket.Cursor().Seek(key)
		if nil != k && bytes.Equal(k, key) {
			value = copyBytes(v)
			found = true
		}
		return nil
	})
	if nil != err {
		return nil, false, fault.Backend("bolt get", err)
	}
	return value, found, nil
}

// ScanPrefix - iterate over a key range of one column
//
// matching entries are copied inside a read transaction and f runs
// after it ends, so f may itself read from the store
func (b *Bolt) ScanPrefix(column Column, prefix []byte, f func(key []byte, value []byte) error) error {
	b.RLock()
	if nil == b.db {
		b.RUnlock()
		return fault.ErrDatabaseClosed
	}

	elements := make([]Element, 0, 16)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(column))
		if nil == bucket {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.Seek(prefix); nil != k && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			elements = append(elements, Element{
				Key:   copyBytes(k),
				Value: copyBytes(v),
			})
		}
		return nil
	})
	b.RUnlock()
	if nil != err {
		return fault.Backend("bolt scan", err)
	}

	for _, e := range elements {
		if err := f(e.Key, e.Value); nil != err {
			return err
		}
	}
	return nil
}

// FetchFrom - read up to count records of a column starting at a key
func (b *Bolt) FetchFrom(column Column, start []byte, count int) ([]Element, error) {
	b.RLock()
	defer b.RUnlock()
	if nil == b.db {
		return nil, fault.ErrDatabaseClosed
	}

	elements := make([]Element, 0, count)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(column))
		if nil == bucket {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.Seek(start); nil != k && len(elements) < count; k, v = c.Next() {
			elements = append(elements, Element{
				Key:   copyBytes(k),
				Value: copyBytes(v),
			})
		}
		return nil
	})
	if nil != err {
		return nil, fault.Backend("bolt fetch", err)
	}
	return elements, nil
}

// WriteBatch - commit all operations in one read-write transaction
func (b *Bolt) WriteBatch(batch *Batch) error {
	b.RLock()
	defer b.RUnlock()
	if nil == b.db {
		return fault.ErrDatabaseClosed
	}
	if b.readOnly {
		return fault.ErrReadOnly
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		for _, op := range batch.Operations() {
			bucket, err := tx.CreateBucketIfNotExists(bucketName(op.Column))
			if nil != err {
				return err
			}
			if op.Delete {
				err = bucket.Delete(op.Key)
			} else {
				err = bucket.Put(op.Key, op.Value)
			}
			if nil != err {
				return err
			}
		}
		return nil
	})
	return fault.Backend("bolt write", err)
}
