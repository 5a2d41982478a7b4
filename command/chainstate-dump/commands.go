// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/addressindex"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/chainstate"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/hashing"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/shielded"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

var errArguments = errors.New("wrong number of arguments")
var errUnknownCommand = errors.New("unknown command")

// the output destination, replaced by tests
var output io.Writer = os.Stdout

// run one command against the opened chain state
func processCommand(network string, store storage.Store, chainState *chainstate.ChainState, arguments []string) error {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "columns":
		for _, c := range storage.Columns {
			fmt.Fprintf(output, "%c → %s\n", byte(c), c)
		}

	case "dump":
		if len(arguments) < 2 || len(arguments) > 3 {
			return errArguments
		}
		column, err := storage.ColumnByName(arguments[0])
		if nil != err {
			return err
		}
		count, err := strconv.Atoi(arguments[1])
		if nil != err {
			return err
		}
		start := []byte{}
		if 3 == len(arguments) {
			start, err = hex.DecodeString(arguments[2])
			if nil != err {
				return err
			}
		}
		data, err := storage.Fetch(store, column, start, count)
		if nil != err {
			return err
		}
		for i, e := range data {
			fmt.Fprintf(output, "%d: Key: %x\n", i, e.Key)
			fmt.Fprintf(output, "%d: Val: %x\n", i, e.Value)
		}

	case "block":
		hash, err := digestArgument(arguments)
		if nil != err {
			return err
		}
		entry, err := chainState.Blocks().Get(hash)
		if nil != err {
			return err
		}
		if nil == entry {
			fmt.Fprintf(output, "block: %s  not found\n", hash)
			return nil
		}
		undo := "none"
		if nil != entry.Undo {
			undo = entry.Undo.String()
		}
		fmt.Fprintf(output, "block:        %s\n", hash)
		fmt.Fprintf(output, "location:     %s\n", entry.Block)
		fmt.Fprintf(output, "undo:         %s\n", undo)
		fmt.Fprintf(output, "transactions: %d\n", entry.TxCount)
		fmt.Fprintf(output, "status:       %s\n", entry.Status)

	case "tx":
		txId, err := digestArgument(arguments)
		if nil != err {
			return err
		}
		location, found, err := chainState.Transactions().Get(txId)
		if nil != err {
			return err
		}
		if !found {
			fmt.Fprintf(output, "tx: %s  not found\n", txId)
			return nil
		}
		fmt.Fprintf(output, "tx:       %s\n", txId)
		fmt.Fprintf(output, "block:    %s\n", location.Block)
		fmt.Fprintf(output, "position: %d\n", location.Index)

	case "address":
		if 1 != len(arguments) {
			return errArguments
		}
		script, err := hex.DecodeString(arguments[0])
		if nil != err {
			script, err = addressindex.AddressToScript(network, arguments[0])
			if nil != err {
				return err
			}
		}
		outpoints, err := chainState.Addresses().Scan(script)
		if nil != err {
			return err
		}
		for _, o := range outpoints {
			coin, err := chainState.Coins().Get(o)
			if nil != err {
				return err
			}
			if nil == coin {
				fmt.Fprintf(output, "%s\n", o)
			} else {
				fmt.Fprintf(output, "%s  value: %d  height: %d\n", o, coin.Value, coin.Height)
			}
		}

	case "nullifier":
		pool, n, err := poolArguments(arguments)
		if nil != err {
			return err
		}
		nullifiers, err := chainState.Nullifiers(pool)
		if nil != err {
			return err
		}
		ok, err := nullifiers.Contains(n)
		if nil != err {
			return err
		}
		fmt.Fprintf(output, "%s nullifier: %s  revealed: %t\n", pool, n, ok)

	case "anchor":
		pool, root, err := poolArguments(arguments)
		if nil != err {
			return err
		}
		anchors, err := chainState.Anchors(pool)
		if nil != err {
			return err
		}
		tree, err := anchors.Get(root)
		if nil != err {
			return err
		}
		if nil == tree {
			fmt.Fprintf(output, "%s anchor: %s  not found\n", pool, root)
			return nil
		}
		fmt.Fprintf(output, "%s anchor: %s  tree: %x\n", pool, root, tree)

	case "tip":
		tip, err := chainState.Tip()
		if nil != err {
			return err
		}
		if nil == tip {
			fmt.Fprintf(output, "no blocks\n")
			return nil
		}
		fmt.Fprintf(output, "tip: %s  height: %d\n", tip.Hash, tip.Height)

	default:
		return errUnknownCommand
	}
	return nil
}

func digestArgument(arguments []string) (hashing.Digest, error) {
	if 1 != len(arguments) {
		return hashing.Digest{}, errArguments
	}
	return hashing.DigestFromString(arguments[0])
}

func poolArguments(arguments []string) (shielded.Pool, hashing.Digest, error) {
	if 2 != len(arguments) {
		return 0, hashing.Digest{}, errArguments
	}
	pool, err := shielded.PoolByName(arguments[0])
	if nil != err {
		return 0, hashing.Digest{}, err
	}
	d, err := hashing.DigestFromString(arguments[1])
	return pool, d, err
}
