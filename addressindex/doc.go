// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addressindex - outpoints paying to each script
//
// pay-to-pubkey scripts are rewritten to the equivalent pay-to-pubkey-hash
// script before use so both forms are found under one address.
//
// key layout (value is empty):
//
//   varint(len(script)) ‖ script ‖ txid (32 bytes) ‖ index (4 bytes LE)
//
// the length prefix makes varint(len(s)) ‖ s a prefix of the keys for
// script s and of no other script's keys
package addressindex
