// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addressindex_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/addressindex"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/chain"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage/mocks"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

// compressed public key of the secp256k1 generator
const generatorKey = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func p2pk(t *testing.T) []byte {
	key, err := hex.DecodeString(generatorKey)
	require.NoError(t, err, "decode key")
	script := []byte{0x21}
	script = append(script, key...)
	return append(script, 0xac)
}

func p2pkh(t *testing.T) []byte {
	script, err := hex.DecodeString("76a914751e76e8199196d454941c45d1b3a323f1433bd688ac")
	require.NoError(t, err, "decode script")
	return script
}

func outpoint(s string, index uint32) utxo.Outpoint {
	return utxo.Outpoint{
		TxId:  hashing.DoubleSHA256([]byte(s)),
		Index: index,
	}
}

func TestNormalise(t *testing.T) {
	assert.Equal(t, p2pkh(t), addressindex.Normalise(p2pk(t)), "p2pk becomes p2pkh")
	assert.Equal(t, p2pkh(t), addressindex.Normalise(p2pkh(t)), "p2pkh unchanged")

	p2sh, err := hex.DecodeString("a914000102030405060708090a0b0c0d0e0f1011121387")
	require.NoError(t, err, "decode p2sh")
	assert.Equal(t, p2sh, addressindex.Normalise(p2sh), "p2sh unchanged")

	other := []byte{0x6a, 0x04, 1, 2, 3, 4}
	assert.Equal(t, other, addressindex.Normalise(other), "nulldata unchanged")

	// not a curve point prefix, still pay-to-pubkey by shape
	odd := p2pk(t)
	odd[1] = 0x05
	normalised := addressindex.Normalise(odd)
	assert.Equal(t, 25, len(normalised), "odd key prefix normalised")
	hash := hashing.Hash160(odd[1:34])
	assert.Equal(t, hash[:], normalised[3:23], "hash of odd key")

	// uncompressed length with any first key byte
	long := make([]byte, 67)
	long[0] = 0x41
	long[1] = 0xff
	long[66] = 0xac
	assert.Equal(t, 25, len(addressindex.Normalise(long)), "65 byte key normalised")

	// wrong push or trailing opcode
	wrongPush := p2pk(t)
	wrongPush[0] = 0x20
	assert.Equal(t, wrongPush, addressindex.Normalise(wrongPush), "wrong push unchanged")
	wrongOp := p2pk(t)
	wrongOp[34] = 0xad
	assert.Equal(t, wrongOp, addressindex.Normalise(wrongOp), "checksigverify unchanged")
	mismatched := append([]byte{0x41}, p2pk(t)[1:]...)
	assert.Equal(t, mismatched, addressindex.Normalise(mismatched), "push length mismatch unchanged")
}

func TestInsertP2PKScanP2PKH(t *testing.T) {
	db := storage.NewMemory()
	defer db.Close()

	ix := addressindex.New(db)
	o := outpoint("p2pk payment", 0)

	batch := storage.NewBatch()
	ix.Insert(batch, p2pk(t), o)
	require.NoError(t, db.WriteBatch(batch), "commit")

	outpoints, err := ix.Scan(p2pkh(t))
	assert.NoError(t, err, "scan p2pkh")
	assert.Equal(t, []utxo.Outpoint{o}, outpoints, "found under p2pkh")

	outpoints, err = ix.Scan(p2pk(t))
	assert.NoError(t, err, "scan p2pk")
	assert.Equal(t, []utxo.Outpoint{o}, outpoints, "found under p2pk")
}

func TestInsertDelete(t *testing.T) {
	db := storage.NewMemory()
	defer db.Close()

	ix := addressindex.New(db)
	o1 := outpoint("first", 1)
	o2 := outpoint("second", 0)

	batch := storage.NewBatch()
	ix.Insert(batch, p2pkh(t), o1)
	ix.Insert(batch, p2pkh(t), o2)
	ix.Insert(batch, p2pkh(t), o1)
	require.NoError(t, db.WriteBatch(batch), "commit inserts")

	outpoints, err := ix.Scan(p2pkh(t))
	assert.NoError(t, err, "scan")
	assert.ElementsMatch(t, []utxo.Outpoint{o1, o2}, outpoints, "no duplicates")

	batch = storage.NewBatch()
	ix.Delete(batch, p2pk(t), o1)
	ix.Delete(batch, p2pkh(t), o2)
	ix.Delete(batch, p2pkh(t), outpoint("never inserted", 9))
	require.NoError(t, db.WriteBatch(batch), "commit deletes")

	outpoints, err = ix.Scan(p2pkh(t))
	assert.NoError(t, err, "scan after delete")
	assert.Empty(t, outpoints, "empty")
}

func TestScriptPrefixIsolation(t *testing.T) {
	db := storage.NewMemory()
	defer db.Close()

	ix := addressindex.New(db)
	short := []byte{0x51}
	long := []byte{0x51, 0x51}
	o1 := outpoint("short", 0)
	o2 := outpoint("long", 0)

	batch := storage.NewBatch()
	ix.Insert(batch, short, o1)
	ix.Insert(batch, long, o2)
	require.NoError(t, db.WriteBatch(batch), "commit")

	outpoints, err := ix.Scan(short)
	assert.NoError(t, err, "scan short")
	assert.Equal(t, []utxo.Outpoint{o1}, outpoints, "short only")

	outpoints, err = ix.Scan(long)
	assert.NoError(t, err, "scan long")
	assert.Equal(t, []utxo.Outpoint{o2}, outpoints, "long only")
}

func TestScanCorruptKey(t *testing.T) {
	db := storage.NewMemory()
	defer db.Close()

	script := []byte{0x51}
	batch := storage.NewBatch()
	batch.Put(storage.AddressIndex, []byte{0x01, 0x51, 1, 2, 3}, []byte{})
	require.NoError(t, db.WriteBatch(batch), "commit")

	_, err := addressindex.New(db).Scan(script)
	assert.Equal(t, fault.ErrInvalidAddressKey, err, "corrupt key")
}

func TestScanBackendError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := fault.Backend("leveldb scan", errors.New("corrupted block"))
	store := mocks.NewMockStore(ctl)
	store.EXPECT().ScanPrefix(storage.AddressIndex, gomock.Any(), gomock.Any()).Return(failure).Times(1)

	outpoints, err := addressindex.New(store).Scan(p2pkh(t))
	assert.Equal(t, failure, err, "propagated")
	assert.Nil(t, outpoints, "no results")
}

func TestAddresses(t *testing.T) {
	address, err := addressindex.ScriptToAddress(chain.Flux, p2pk(t))
	require.NoError(t, err, "p2pk address")
	assert.True(t, strings.HasPrefix(address, "t1"), "mainnet p2pkh: %s", address)

	same, err := addressindex.ScriptToAddress(chain.Flux, p2pkh(t))
	require.NoError(t, err, "p2pkh address")
	assert.Equal(t, address, same, "p2pk and p2pkh share an address")

	script, err := addressindex.AddressToScript(chain.Flux, address)
	require.NoError(t, err, "address to script")
	assert.Equal(t, p2pkh(t), script, "script")

	p2sh, err := hex.DecodeString("a914000102030405060708090a0b0c0d0e0f1011121387")
	require.NoError(t, err, "decode p2sh")
	address, err = addressindex.ScriptToAddress(chain.Flux, p2sh)
	require.NoError(t, err, "p2sh address")
	assert.True(t, strings.HasPrefix(address, "t3"), "mainnet p2sh: %s", address)
	script, err = addressindex.AddressToScript(chain.Flux, address)
	require.NoError(t, err, "p2sh to script")
	assert.Equal(t, p2sh, script, "p2sh script")

	address, err = addressindex.ScriptToAddress(chain.Testnet, p2pkh(t))
	require.NoError(t, err, "testnet address")
	assert.True(t, strings.HasPrefix(address, "tm"), "testnet p2pkh: %s", address)

	_, err = addressindex.AddressToScript(chain.Flux, address)
	assert.Equal(t, fault.ErrInvalidAddress, err, "wrong network")

	_, err = addressindex.ScriptToAddress(chain.Flux, []byte{0x6a})
	assert.Equal(t, fault.ErrUnsupportedScriptForIndex, err, "nulldata")

	_, err = addressindex.ScriptToAddress("bitcoin", p2pkh(t))
	assert.Equal(t, fault.ErrInvalidChain, err, "unknown chain")
}

func TestAddressChecksum(t *testing.T) {
	address, err := addressindex.ScriptToAddress(chain.Flux, p2pkh(t))
	require.NoError(t, err, "address")

	last := address[len(address)-1]
	replacement := byte('2')
	if '2' == last {
		replacement = '3'
	}
	corrupt := address[:len(address)-1] + string(replacement)

	_, err = addressindex.AddressToScript(chain.Flux, corrupt)
	assert.Equal(t, fault.ErrInvalidAddressChecksum, err, "checksum")

	_, err = addressindex.AddressToScript(chain.Flux, "t1")
	assert.Equal(t, fault.ErrInvalidAddress, err, "short")
}

func TestScanAddress(t *testing.T) {
	db := storage.NewMemory()
	defer db.Close()

	ix := addressindex.New(db)
	o := outpoint("to address", 3)

	batch := storage.NewBatch()
	ix.Insert(batch, p2pk(t), o)
	require.NoError(t, db.WriteBatch(batch), "commit")

	address, err := addressindex.ScriptToAddress(chain.Regtest, p2pkh(t))
	require.NoError(t, err, "address")

	outpoints, err := ix.ScanAddress(chain.Regtest, address)
	assert.NoError(t, err, "scan address")
	assert.Equal(t, []utxo.Outpoint{o}, outpoints, "outpoints")
}
