// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/addressindex"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/blockindex"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/flatfile"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/shielded"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/txindex"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/utxo"
)

// key of the best block record in the meta column
var tipKey = []byte("tip")

const tipSize = 32 + 4

// Tip - the best block
type Tip struct {
	Hash   hashing.Digest
	Height uint32
}

// ChainState - all indexes over one store plus the block files
//
// readers may use the index accessors concurrently with a writer;
// ConnectBlock and DisconnectBlock are serialised
type ChainState struct {
	sync.Mutex

	log   *logger.L
	store storage.Store
	files *flatfile.Store

	blocks       *blockindex.Index
	transactions *txindex.Index
	addresses    *addressindex.Index
	coins        *utxo.Set
	anchors      map[shielded.Pool]*shielded.AnchorSet
	nullifiers   map[shielded.Pool]*shielded.NullifierSet
}

// New - chain state over an open store and flat file directory, the
// caller keeps ownership of both
func New(store storage.Store, files *flatfile.Store) (*ChainState, error) {
	c := &ChainState{
		log:          logger.New("chainstate"),
		store:        store,
		files:        files,
		blocks:       blockindex.New(store),
		transactions: txindex.New(store),
		addresses:    addressindex.New(store),
		coins:        utxo.New(store),
		anchors:      make(map[shielded.Pool]*shielded.AnchorSet),
		nullifiers:   make(map[shielded.Pool]*shielded.NullifierSet),
	}

	for _, pool := range shielded.Pools {
		anchors, err := shielded.NewAnchorSet(store, pool)
		if nil != err {
			return nil, err
		}
		c.anchors[pool] = anchors

		nullifiers, err := shielded.NewNullifierSet(store, pool)
		if nil != err {
			return nil, err
		}
		c.nullifiers[pool] = nullifiers
	}

	return c, nil
}

// Blocks - the block index
func (c *ChainState) Blocks() *blockindex.Index {
	return c.blocks
}

// Transactions - the tx index
func (c *ChainState) Transactions() *txindex.Index {
	return c.transactions
}

// Addresses - the address index
func (c *ChainState) Addresses() *addressindex.Index {
	return c.addresses
}

// Coins - the utxo set
func (c *ChainState) Coins() *utxo.Set {
	return c.coins
}

// Anchors - anchor set of a pool
func (c *ChainState) Anchors(pool shielded.Pool) (*shielded.AnchorSet, error) {
	anchors, ok := c.anchors[pool]
	if !ok {
		return nil, fault.ErrInvalidPool
	}
	return anchors, nil
}

// Nullifiers - nullifier set of a pool
func (c *ChainState) Nullifiers(pool shielded.Pool) (*shielded.NullifierSet, error) {
	nullifiers, ok := c.nullifiers[pool]
	if !ok {
		return nil, fault.ErrInvalidPool
	}
	return nullifiers, nil
}

// Tip - the best block, nil if no block was ever connected
func (c *ChainState) Tip() (*Tip, error) {
	return getTip(c.store)
}

// ReadBlock - raw bytes of an indexed block
func (c *ChainState) ReadBlock(hash hashing.Digest) ([]byte, error) {
	entry, err := c.blocks.Get(hash)
	if nil != err {
		return nil, err
	}
	if nil == entry {
		return nil, fault.ErrBlockNotFound
	}
	return c.files.ReadBlock(entry.Block)
}

// ConnectBlock - store a block on top of the current tip
//
// the block and undo bytes are appended to the flat files first, then
// every index is updated by a single batch
func (c *ChainState) ConnectBlock(changes *Changes) error {
	c.Lock()
	defer c.Unlock()

	tip, err := getTip(c.store)
	if nil != err {
		return err
	}
	if nil != tip && (tip.Hash != changes.Previous || tip.Height+1 != changes.Height) {
		c.log.Errorf("connect: %s  height: %d  does not extend tip: %s  height: %d", changes.Hash, changes.Height, tip.Hash, tip.Height)
		return fault.ErrTipMismatch
	}

	for _, n := range changes.Nullifiers {
		if !n.Pool.Valid() {
			return fault.ErrInvalidPool
		}
	}
	anchors, err := c.introducedAnchors(changes.Anchors)
	if nil != err {
		return err
	}

	undo := &Undo{
		Previous:   tip,
		TxIds:      changes.TxIds,
		Created:    changes.Created,
		Spent:      changes.Spent,
		Nullifiers: changes.Nullifiers,
		Anchors:    anchors,
	}

	blockLocation, err := c.files.WriteBlock(changes.Block)
	if nil != err {
		return err
	}
	undoLocation, err := c.files.WriteUndo(blockLocation.File, undo.Pack())
	if nil != err {
		c.truncate(flatfile.BlockFiles, blockLocation)
		return err
	}

	batch := storage.NewBatch()

	c.blocks.Insert(batch, changes.Hash, &blockindex.Entry{
		Block:   blockLocation,
		Undo:    &undoLocation,
		TxCount: uint32(len(changes.TxIds)),
		Status:  blockindex.HaveData | blockindex.HaveUndo,
	})

	for i, txId := range changes.TxIds {
		c.transactions.Insert(batch, txId, txindex.Location{
			Block: blockLocation,
			Index: uint32(i),
		})
	}

	// created before spent so an output spent in its own block ends
	// up absent
	for _, o := range changes.Created {
		c.coins.Insert(batch, o.Outpoint, o.Coin)
		c.addresses.Insert(batch, o.Coin.Script, o.Outpoint)
	}
	for _, o := range changes.Spent {
		c.coins.Delete(batch, o.Outpoint)
		c.addresses.Delete(batch, o.Coin.Script, o.Outpoint)
	}

	for _, n := range changes.Nullifiers {
		c.nullifiers[n.Pool].Insert(batch, n.Nullifier)
	}
	for _, a := range anchors {
		c.anchors[a.Pool].Insert(batch, a.Root, a.Tree)
	}

	putTip(batch, &Tip{
		Hash:   changes.Hash,
		Height: changes.Height,
	})

	c.log.Debugf("connect batch: %d operations", batch.Len())

	err = c.store.WriteBatch(batch)
	if nil != err {
		c.log.Criticalf("connect: %s  write batch error: %s", changes.Hash, err)
		c.truncate(flatfile.UndoFiles, undoLocation)
		c.truncate(flatfile.BlockFiles, blockLocation)
		return err
	}

	c.log.Infof("connected: %s  height: %d  transactions: %d", changes.Hash, changes.Height, len(changes.TxIds))
	return nil
}

// DisconnectBlock - remove the tip block using its undo data
//
// the block index entry stays, with its status bits cleared, so the
// raw bytes remain addressable
func (c *ChainState) DisconnectBlock(hash hashing.Digest) error {
	c.Lock()
	defer c.Unlock()

	tip, err := getTip(c.store)
	if nil != err {
		return err
	}
	if nil == tip || tip.Hash != hash {
		c.log.Errorf("disconnect: %s  is not the tip", hash)
		return fault.ErrTipMismatch
	}

	entry, err := c.blocks.Get(hash)
	if nil != err {
		return err
	}
	if nil == entry {
		return fault.ErrBlockNotFound
	}
	if nil == entry.Undo || !entry.Status.Has(blockindex.HaveUndo) {
		return fault.ErrNoUndoData
	}

	record, err := c.files.ReadUndo(*entry.Undo)
	if nil != err {
		return err
	}
	undo, err := UndoFromBytes(record)
	if nil != err {
		c.log.Criticalf("disconnect: %s  undo record error: %s", hash, err)
		return err
	}

	batch := storage.NewBatch()

	// reverse order of connect
	for _, o := range undo.Spent {
		c.coins.Insert(batch, o.Outpoint, o.Coin)
		c.addresses.Insert(batch, o.Coin.Script, o.Outpoint)
	}
	for _, o := range undo.Created {
		c.coins.Delete(batch, o.Outpoint)
		c.addresses.Delete(batch, o.Coin.Script, o.Outpoint)
	}

	for _, txId := range undo.TxIds {
		c.transactions.Delete(batch, txId)
	}
	for _, n := range undo.Nullifiers {
		c.nullifiers[n.Pool].Remove(batch, n.Nullifier)
	}
	for _, a := range undo.Anchors {
		c.anchors[a.Pool].Remove(batch, a.Root)
	}

	entry.Status = entry.Status.Clear(blockindex.HaveData | blockindex.HaveUndo)
	c.blocks.Insert(batch, hash, entry)

	if nil == undo.Previous {
		batch.Delete(storage.Meta, tipKey)
	} else {
		putTip(batch, undo.Previous)
	}

	c.log.Debugf("disconnect batch: %d operations", batch.Len())

	err = c.store.WriteBatch(batch)
	if nil != err {
		c.log.Criticalf("disconnect: %s  write batch error: %s", hash, err)
		return err
	}

	c.log.Infof("disconnected: %s  height: %d", hash, tip.Height)
	return nil
}

// the anchors a block adds to the sets
//
// a root already stored was introduced by an earlier block and stays
// when this block is disconnected
func (c *ChainState) introducedAnchors(anchors []Anchor) ([]Anchor, error) {
	type poolRoot struct {
		pool shielded.Pool
		root hashing.Digest
	}
	seen := make(map[poolRoot]struct{})

	introduced := make([]Anchor, 0, len(anchors))
	for _, a := range anchors {
		if !a.Pool.Valid() {
			return nil, fault.ErrInvalidPool
		}
		key := poolRoot{pool: a.Pool, root: a.Root}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		found, err := c.anchors[a.Pool].Contains(a.Root)
		if nil != err {
			return nil, err
		}
		if found {
			continue
		}
		introduced = append(introduced, a)
	}
	return introduced, nil
}

// give back flat file space after a failed connect
func (c *ChainState) truncate(kind flatfile.Kind, location flatfile.Location) {
	err := c.files.Truncate(kind, location)
	if nil != err {
		c.log.Errorf("truncate %s: %s  error: %s", kind, location, err)
	}
}

func getTip(store storage.Store) (*Tip, error) {
	buffer, found, err := store.Get(storage.Meta, tipKey)
	if nil != err || !found {
		return nil, err
	}
	if tipSize != len(buffer) {
		return nil, fault.ErrInvalidTipRecord
	}
	tip := &Tip{
		Height: binary.LittleEndian.Uint32(buffer[32:]),
	}
	copy(tip.Hash[:], buffer[:32])
	return tip, nil
}

func putTip(batch *storage.Batch, tip *Tip) {
	buffer := make([]byte, tipSize)
	copy(buffer, tip.Hash[:])
	binary.LittleEndian.PutUint32(buffer[32:], tip.Height)
	batch.Put(storage.Meta, tipKey, buffer)
}
