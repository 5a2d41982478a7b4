// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/chain"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/flatfile"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/storage"
	"github.com/Sikbik/fluxd-rust-explorer-sub003/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseDirectory = "data"
	defaultBlocksDirectory   = "blocks"

	defaultLogDirectory = "log"
	defaultLogFile      = "chainstate.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DatabaseType - key/value store selection
type DatabaseType struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// BlocksType - flat file settings
type BlocksType struct {
	Directory   string `gluamapper:"directory" json:"directory"`
	MaxFileSize uint64 `gluamapper:"max_file_size" json:"max_file_size"`
	OpenFiles   int    `gluamapper:"open_files" json:"open_files"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Blocks        BlocksType           `gluamapper:"blocks" json:"blocks"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read, decode and verify the configuration
//
// relative paths are resolved against the data directory, which is
// itself resolved against the directory of the configuration file
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	configurationDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Chain:         chain.Flux,

		Database: DatabaseType{
			Backend:   storage.BackendLevelDB,
			Directory: defaultDatabaseDirectory,
		},

		Blocks: BlocksType{
			Directory:   defaultBlocksDirectory,
			MaxFileSize: flatfile.DefaultMaxFileSize,
			OpenFiles:   flatfile.DefaultOpenFiles,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fault.ErrInvalidChain
	}

	options.Database.Backend = strings.ToLower(options.Database.Backend)
	switch options.Database.Backend {
	case storage.BackendLevelDB, storage.BackendBolt, storage.BackendMemory:
	default:
		return nil, fault.ErrInvalidBackend
	}

	// default database name follows chain and backend
	if "" == options.Database.Name {
		options.Database.Name = options.Chain + "." + options.Database.Backend
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = configurationDirectory // same directory as the configuration file
	default:
		options.DataDirectory = util.EnsureAbsolute(configurationDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Blocks.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	return options, nil
}

// StorageOptions - how to open the key/value store
func (c *Configuration) StorageOptions(readOnly bool) storage.Options {
	return storage.Options{
		Backend:  c.Database.Backend,
		Name:     c.Database.Name,
		ReadOnly: readOnly,
	}
}

// FlatFileOptions - how to open the block files
func (c *Configuration) FlatFileOptions(readOnly bool) flatfile.Options {
	return flatfile.Options{
		Directory:   c.Blocks.Directory,
		MaxFileSize: c.Blocks.MaxFileSize,
		OpenFiles:   c.Blocks.OpenFiles,
		ReadOnly:    readOnly,
	}
}
