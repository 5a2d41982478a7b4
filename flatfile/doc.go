// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package flatfile - append only block and undo files
//
// raw block bytes are appended to blk00000.dat, blk00001.dat, ... and
// the undo record of each block goes to the rev file with the same
// number.  A Location addresses one record:
//
//   file number   4 bytes  little endian
//   offset        8 bytes  little endian
//   length        4 bytes  little endian
//
// a length of zero means "no record"
package flatfile
