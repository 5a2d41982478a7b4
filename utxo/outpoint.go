// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"encoding/binary"
	"fmt"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
)

// OutpointSize - bytes in a packed outpoint
const OutpointSize = len(hashing.Digest{}) + 4

// Outpoint - one output of one transaction
type Outpoint struct {
	TxId  hashing.Digest
	Index uint32
}

// Pack - txid ‖ index (4 bytes little endian)
func (o Outpoint) Pack() []byte {
	buffer := make([]byte, OutpointSize)
	copy(buffer, o.TxId[:])
	binary.LittleEndian.PutUint32(buffer[32:], o.Index)
	return buffer
}

// OutpointFromBytes - decode a packed outpoint
func OutpointFromBytes(buffer []byte) (Outpoint, error) {
	if OutpointSize != len(buffer) {
		return Outpoint{}, fault.ErrInvalidOutpointLength
	}
	o := Outpoint{
		Index: binary.LittleEndian.Uint32(buffer[32:]),
	}
	copy(o.TxId[:], buffer[:32])
	return o, nil
}

// String - txid:index
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxId, o.Index)
}
