// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"encoding/binary"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/flatfile"
)

// record sizes
const (
	V1Size = flatfile.LocationSize
	V2Size = 2*flatfile.LocationSize + 4 + 4
)

// Entry - block index record
type Entry struct {
	Block   flatfile.Location
	Undo    *flatfile.Location
	TxCount uint32
	Status  Status
}

// Pack - encode as V2
func (e *Entry) Pack() []byte {
	buffer := make([]byte, V2Size)
	e.Block.PackInto(buffer[0:16])
	flatfile.PackOptional(e.Undo, buffer[16:32])
	binary.LittleEndian.PutUint32(buffer[32:36], e.TxCount)
	binary.LittleEndian.PutUint32(buffer[36:40], uint32(e.Status))
	return buffer
}

// Unpack - decode a V1 or V2 record
//
// ok is false for any other length
func Unpack(buffer []byte) (entry *Entry, ok bool) {
	switch len(buffer) {

	case V1Size:
		block, _ := flatfile.LocationFromBytes(buffer)
		return &Entry{
			Block:   block,
			Undo:    nil,
			TxCount: 0,
			Status:  HaveData,
		}, true

	case V2Size:
		block, _ := flatfile.LocationFromBytes(buffer[0:16])
		undo, _ := flatfile.OptionalFromBytes(buffer[16:32])
		return &Entry{
			Block:   block,
			Undo:    undo,
			TxCount: binary.LittleEndian.Uint32(buffer[32:36]),
			Status:  Status(binary.LittleEndian.Uint32(buffer[36:40])),
		}, true

	default:
		return nil, false
	}
}
