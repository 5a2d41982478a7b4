// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txindex - map a transaction id to the block holding it
package txindex

import (
	"encoding/binary"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/flatfile"
)

// LocationSize - bytes in a packed tx location
const LocationSize = flatfile.LocationSize + 4

// Location - block location and position of a transaction within it
type Location struct {
	Block flatfile.Location
	Index uint32
}

// Pack - encode as 20 bytes
func (l Location) Pack() []byte {
	buffer := make([]byte, LocationSize)
	l.Block.PackInto(buffer[0:16])
	binary.LittleEndian.PutUint32(buffer[16:20], l.Index)
	return buffer
}

// LocationFromBytes - decode, ok is false unless exactly 20 bytes
func LocationFromBytes(buffer []byte) (Location, bool) {
	if LocationSize != len(buffer) {
		return Location{}, false
	}
	block, _ := flatfile.LocationFromBytes(buffer[0:16])
	return Location{
		Block: block,
		Index: binary.LittleEndian.Uint32(buffer[16:20]),
	}, true
}
