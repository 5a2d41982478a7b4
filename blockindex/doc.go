// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockindex - where each block's bytes and undo data live
//
// records are keyed by the 32 byte block hash.  Two encodings exist:
//
//   V1 (16 bytes)  block location only
//   V2 (40 bytes)  block location ‖ undo location ‖ tx count ‖ status
//
// V1 records are still read but only V2 is ever written
package blockindex
