// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// names of the backends
const (
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// schema version
//
// version 1 stores 16 byte block index records, version 2 adds the 40
// byte form; both remain readable so version 1 is upgraded in place
const currentVersion = 2

// for database version
var versionKey = []byte("version")

// Options - how to open a database
type Options struct {
	Backend  string
	Name     string
	ReadOnly bool
}

// Open - open the selected backend and check its schema version
func Open(options Options) (Database, error) {
	log := logger.New("storage")

	var db Database
	var err error

	switch options.Backend {
	case BackendLevelDB, "":
		db, err = OpenLevelDB(options.Name, options.ReadOnly)
	case BackendBolt:
		db, err = OpenBolt(options.Name, options.ReadOnly)
	case BackendMemory:
		db = NewMemory()
	default:
		log.Criticalf("unknown backend: %q", options.Backend)
		return nil, fault.ErrInvalidBackend
	}
	if nil != err {
		log.Criticalf("open %s: %q  error: %s", options.Backend, options.Name, err)
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentVersion)
		return nil, fault.ErrDatabaseVersionTooNew
	}

	switch {
	case options.ReadOnly && 0 == version:
		log.Criticalf("database: %q has no version record", options.Name)
		return nil, fault.ErrDatabaseInconsistent

	case options.ReadOnly:
		// older records are decodable, nothing to change

	case 0 == version:
		// database was empty so tag as current version
		log.Infof("initialise empty database: %q", options.Name)
		err = putVersion(db, currentVersion)

	case version < currentVersion:
		log.Warnf("upgrade database version: %d → %d", version, currentVersion)
		err = putVersion(db, currentVersion)
	}
	if nil != err {
		return nil, err
	}

	log.Infof("opened %s database: %q  version: %d  read only: %v", options.Backend, options.Name, version, options.ReadOnly)

	ok = true // prevent db close
	return db, nil
}

// return the stored schema version, 0 for an empty database
func getVersion(store Store) (int, error) {
	versionValue, found, err := store.Get(Meta, versionKey)
	if nil != err {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	if 4 != len(versionValue) {
		return 0, fault.ErrInvalidVersionRecord
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(store Store, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	batch := NewBatch()
	batch.Put(Meta, versionKey, currentVersion)
	return store.WriteBatch(batch)
}
