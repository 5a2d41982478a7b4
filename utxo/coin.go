// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package utxo - the set of unspent transaction outputs
package utxo

import (
	"math"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/util"
)

// maximum script accepted when decoding a coin
const maximumScriptLength = 10000

// Coin - an unspent output
//
// packed as:
//   varint(height << 1 | coinbase)
//   varint(value)
//   varint(len(script)) ‖ script
type Coin struct {
	Value    uint64
	Height   uint32
	Coinbase bool
	Script   []byte
}

// Pack - encode a coin
func (c *Coin) Pack() []byte {
	code := uint64(c.Height) << 1
	if c.Coinbase {
		code |= 1
	}

	buffer := util.ToVarint64(code)
	buffer = append(buffer, util.ToVarint64(c.Value)...)
	buffer = append(buffer, util.ToVarint64(uint64(len(c.Script)))...)
	buffer = append(buffer, c.Script...)
	return buffer
}

// CoinFromBytes - decode a packed coin, returning the number of bytes
// consumed
func CoinFromBytes(record []byte) (*Coin, int, error) {
	n := 0

	code, codeLength := util.FromVarint64(record[n:])
	if 0 == codeLength || code>>1 > math.MaxUint32 {
		return nil, 0, fault.ErrInvalidCoinRecord
	}
	n += codeLength

	value, valueLength := util.FromVarint64(record[n:])
	if 0 == valueLength {
		return nil, 0, fault.ErrInvalidCoinRecord
	}
	n += valueLength

	scriptLength, scriptLengthLength := util.ClippedVarint64(record[n:], 0, maximumScriptLength)
	if 0 == scriptLengthLength {
		return nil, 0, fault.ErrInvalidCoinRecord
	}
	n += scriptLengthLength

	if n+scriptLength > len(record) {
		return nil, 0, fault.ErrInvalidCoinRecord
	}
	script := make([]byte, scriptLength)
	copy(script, record[n:n+scriptLength])
	n += scriptLength

	return &Coin{
		Value:    value,
		Height:   uint32(code >> 1),
		Coinbase: 1 == code&1,
		Script:   script,
	}, n, nil
}
