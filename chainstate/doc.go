// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainstate - connect and disconnect blocks
//
// a connect appends the raw block and its undo record to the flat
// files and then commits one batch covering the block index, tx index,
// address index, utxo set, nullifiers, anchors and the tip.  A
// disconnect reads the undo record back and commits the inverse batch.
//
// validation is not done here, Changes must describe a block that has
// already been checked
package chainstate
