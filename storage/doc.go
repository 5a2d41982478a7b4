// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk chain-state store
//
// One physical key/value store is split into a series of logical
// columns. Each column is defined by a single prefix byte, keys are
// only unique within their column.
//
// Three backends implement the same Store contract:
//
//   leveldb  - production, github.com/syndtr/goleveldb
//   bolt     - alternative persistent engine, go.etcd.io/bbolt
//   memory   - ordered in-memory tree for tests, github.com/google/btree
//
// Contract:
//
//   Get        - point lookup; absence is (nil, false, nil) never an error
//   ScanPrefix - every key/value of a column whose key starts with a
//                prefix, in lexicographic key order
//   WriteBatch - apply all the puts/deletes of a batch atomically; the
//                data is durable when the call returns
//
// Notes:
// 1. ++           = concatenation of byte data
// 2. hash         = 32 byte little endian digest
// 3. outpoint     = txid ++ output index (little endian uint32)
// 4. script       = varint length ++ normalised script pubkey
//
// Columns:
//
//   M ++ name                 - metadata: "version" (big endian uint32), "tip" (hash)
//   B ++ block hash           - block index entry (16 byte V1 or 40 byte V2)
//   T ++ txid                 - transaction location (20 bytes)
//   A ++ script ++ outpoint   - address index (empty value)
//   P ++ anchor               - sprout anchor: serialised commitment tree
//   Q ++ anchor               - sapling anchor: serialised commitment tree
//   N ++ nullifier            - sprout nullifier (empty value)
//   S ++ nullifier            - sapling nullifier (empty value)
//   U ++ outpoint             - unspent output record
//   H ++ block hash           - reserved for header-only entries
//
// Testing:
//   Z ++ key                  - testing data
package storage
