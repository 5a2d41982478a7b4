// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flatfile

import (
	"encoding/binary"
	"fmt"
)

// LocationSize - bytes in a packed location
const LocationSize = 16

// Location - position of one record in a numbered flat file
type Location struct {
	File   uint32
	Offset uint64
	Length uint32
}

// IsNone - true for the zero length sentinel
func (l Location) IsNone() bool {
	return 0 == l.Length
}

// Pack - encode as 16 bytes
func (l Location) Pack() []byte {
	buffer := make([]byte, LocationSize)
	l.PackInto(buffer)
	return buffer
}

// PackInto - encode into the first 16 bytes of buffer
func (l Location) PackInto(buffer []byte) {
	binary.LittleEndian.PutUint32(buffer[0:4], l.File)
	binary.LittleEndian.PutUint64(buffer[4:12], l.Offset)
	binary.LittleEndian.PutUint32(buffer[12:16], l.Length)
}

// LocationFromBytes - decode a packed location
//
// ok is false if the buffer is not exactly 16 bytes
func LocationFromBytes(buffer []byte) (location Location, ok bool) {
	if LocationSize != len(buffer) {
		return Location{}, false
	}
	location = Location{
		File:   binary.LittleEndian.Uint32(buffer[0:4]),
		Offset: binary.LittleEndian.Uint64(buffer[4:12]),
		Length: binary.LittleEndian.Uint32(buffer[12:16]),
	}
	return location, true
}

// PackOptional - encode an optional location, nil and zero length both
// become 16 zero bytes
func PackOptional(location *Location, buffer []byte) {
	if nil == location || location.IsNone() {
		for i := 0; i < LocationSize; i += 1 {
			buffer[i] = 0
		}
		return
	}
	location.PackInto(buffer)
}

// OptionalFromBytes - decode an optional location
//
// a zero length record decodes as nil
func OptionalFromBytes(buffer []byte) (location *Location, ok bool) {
	l, ok := LocationFromBytes(buffer)
	if !ok {
		return nil, false
	}
	if l.IsNone() {
		return nil, true
	}
	return &l, true
}

// String - human readable form
func (l Location) String() string {
	if l.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d:%d+%d", l.File, l.Offset, l.Length)
}
