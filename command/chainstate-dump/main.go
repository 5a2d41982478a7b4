// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/chainstate"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/configuration"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/flatfile"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		usage(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.Get(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
		theConfiguration.Logging.Levels[logger.DefaultTag] = "debug"
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// everything is opened read only
	db, err := storage.Open(theConfiguration.StorageOptions(storage.ReadOnly))
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("%s: storage open error: %s", program, err)
	}
	defer db.Close()

	files, err := flatfile.Open(theConfiguration.FlatFileOptions(storage.ReadOnly))
	if nil != err {
		log.Criticalf("block files open error: %s", err)
		exitwithstatus.Message("%s: block files open error: %s", program, err)
	}
	defer files.Close()

	chainState, err := chainstate.New(db, files)
	if nil != err {
		log.Criticalf("chain state error: %s", err)
		exitwithstatus.Message("%s: chain state error: %s", program, err)
	}

	err = processCommand(theConfiguration.Chain, db, chainState, arguments)
	if nil != err {
		log.Errorf("command: %q  error: %s", arguments[0], err)
		exitwithstatus.Message("%s: %s error: %s", program, arguments[0], err)
	}
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--version] --config-file=FILE command [arguments...]\n", program)
	fmt.Printf("\n")
	fmt.Printf("commands:\n")
	fmt.Printf("  columns                       - list the columns of the store\n")
	fmt.Printf("  dump COLUMN COUNT [START]     - hex dump records of a column, START is a hex key\n")
	fmt.Printf("  block HASH                    - show the block index entry of a block\n")
	fmt.Printf("  tx TXID                       - show where a transaction is stored\n")
	fmt.Printf("  address ADDRESS|SCRIPT-HEX    - list the outpoints paying to an address\n")
	fmt.Printf("  nullifier POOL HEX            - check if a nullifier was revealed\n")
	fmt.Printf("  anchor POOL ROOT              - show the tree state of an anchor\n")
	fmt.Printf("  tip                           - show the best block\n")
}
