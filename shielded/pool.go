// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package shielded - anchors and nullifiers of the shielded pools
//
// both sets are storage primitives only: they do not validate roots or
// spends, they remember what they were told until it is removed
package shielded

import (
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// Pool - a shielded value pool
type Pool int

// the pools
const (
	Sprout Pool = iota
	Sapling
)

// Pools - every pool
var Pools = []Pool{Sprout, Sapling}

// String - pool name
func (p Pool) String() string {
	switch p {
	case Sprout:
		return "sprout"
	case Sapling:
		return "sapling"
	default:
		return "*unknown*"
	}
}

// Valid - true for a known pool
func (p Pool) Valid() bool {
	return p == Sprout || p == Sapling
}

// PoolByName - parse a pool name
func PoolByName(name string) (Pool, error) {
	for _, p := range Pools {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fault.ErrInvalidPool
}

func (p Pool) anchorColumn() (storage.Column, error) {
	switch p {
	case Sprout:
		return storage.SproutAnchors, nil
	case Sapling:
		return storage.SaplingAnchors, nil
	default:
		return 0, fault.ErrInvalidPool
	}
}

func (p Pool) nullifierColumn() (storage.Column, error) {
	switch p {
	case Sprout:
		return storage.SproutNullifiers, nil
	case Sapling:
		return storage.SaplingNullifiers, nil
	default:
		return 0, fault.ErrInvalidPool
	}
}
