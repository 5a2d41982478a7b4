// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashing - the hash functions shared by the chain-state indexes
//
// SHA-256, double SHA-256 (transaction and block ids, address
// checksums) and hash160 = RIPEMD-160(SHA-256(data)) (public key
// hashes in scripts and addresses)
//
// all functions are pure and safe for concurrent use
package hashing
