// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"strings"
)

// Status - independent capability bits of a block
type Status uint32

// bit positions are part of the on-disk format
const (
	HaveData Status = 1 << 0
	HaveUndo Status = 1 << 1
)

// Has - true if all bits of flag are set
func (s Status) Has(flag Status) bool {
	return flag == s&flag
}

// Set - return status with flag bits added
func (s Status) Set(flag Status) Status {
	return s | flag
}

// Clear - return status with flag bits removed
func (s Status) Clear(flag Status) Status {
	return s &^ flag
}

// String - list the names of the set bits
func (s Status) String() string {
	names := make([]string, 0, 2)
	if s.Has(HaveData) {
		names = append(names, "data")
	}
	if s.Has(HaveUndo) {
		names = append(names, "undo")
	}
	if 0 == len(names) {
		return "none"
	}
	return strings.Join(names, "|")
}
