// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// Column - a logical keyspace within the physical store
type Column byte

// all columns; the byte values are persistent and must never change
const (
	Meta              Column = 'M'
	BlockIndex        Column = 'B'
	TxIndex           Column = 'T'
	AddressIndex      Column = 'A'
	SproutAnchors     Column = 'P'
	SaplingAnchors    Column = 'Q'
	SproutNullifiers  Column = 'N'
	SaplingNullifiers Column = 'S'
	UTXO              Column = 'U'
	HeaderIndex       Column = 'H'
	Test              Column = 'Z'
)

// Columns - every known column in display order
var Columns = []Column{
	Meta,
	BlockIndex,
	TxIndex,
	AddressIndex,
	SproutAnchors,
	SaplingAnchors,
	SproutNullifiers,
	SaplingNullifiers,
	UTXO,
	HeaderIndex,
	Test,
}

var columnNames = map[Column]string{
	Meta:              "meta",
	BlockIndex:        "block-index",
	TxIndex:           "tx-index",
	AddressIndex:      "address-index",
	SproutAnchors:     "sprout-anchors",
	SaplingAnchors:    "sapling-anchors",
	SproutNullifiers:  "sprout-nullifiers",
	SaplingNullifiers: "sapling-nullifiers",
	UTXO:              "utxo",
	HeaderIndex:       "header-index",
	Test:              "test",
}

// Valid - check that a column is one of the known tags
func (c Column) Valid() bool {
	_, ok := columnNames[c]
	return ok
}

// String - name of the column
func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "*unknown*"
}

// ColumnByName - find a column from its name or its single tag letter
func ColumnByName(name string) (Column, error) {
	for c, n := range columnNames {
		if n == name {
			return c, nil
		}
	}
	if 1 == len(name) && Column(name[0]).Valid() {
		return Column(name[0]), nil
	}
	return 0, fault.ErrInvalidColumn
}

// prepend the column tag onto the key
func prefixKey(column Column, key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = byte(column)
	return append(prefixedKey, key...)
}
