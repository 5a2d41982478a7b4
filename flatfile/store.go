// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flatfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	lru "github.com/hashicorp/golang-lru"

	"github.com/Sikbik/fluxd-rust-explorer-sub003/fault"
)

// Kind - which family of files
type Kind int

// the two file families
const (
	BlockFiles Kind = iota
	UndoFiles
)

// defaults
const (
	DefaultMaxFileSize = 128 * 1024 * 1024 // 128 MiB
	DefaultOpenFiles   = 64
)

// String - file name prefix
func (k Kind) String() string {
	switch k {
	case BlockFiles:
		return "blk"
	case UndoFiles:
		return "rev"
	default:
		return "*unknown*"
	}
}

// Options - where and how to keep the flat files
type Options struct {
	Directory   string
	MaxFileSize uint64
	OpenFiles   int
	ReadOnly    bool
}

// Store - numbered append only files
type Store struct {
	sync.Mutex

	log         *logger.L
	directory   string
	maxFileSize uint64
	readOnly    bool

	// block file currently being appended to
	current     uint32
	currentSize uint64

	// read handles, closed on eviction
	handles *lru.Cache
}

type handleKey struct {
	kind   Kind
	number uint32
}

// Open - open a flat file directory and recover the write cursor
func Open(options Options) (*Store, error) {
	log := logger.New("flatfile")

	if "" == options.Directory {
		return nil, fault.ErrNotInitialised
	}
	if 0 == options.MaxFileSize {
		options.MaxFileSize = DefaultMaxFileSize
	}
	if options.OpenFiles <= 0 {
		options.OpenFiles = DefaultOpenFiles
	}

	if !options.ReadOnly {
		err := os.MkdirAll(options.Directory, 0700)
		if nil != err {
			log.Criticalf("create directory: %q  error: %s", options.Directory, err)
			return nil, fault.Backend("flatfile mkdir", err)
		}
	}

	handles, err := lru.NewWithEvict(options.OpenFiles, func(key interface{}, value interface{}) {
		value.(*os.File).Close()
	})
	if nil != err {
		return nil, err
	}

	s := &Store{
		log:         log,
		directory:   options.Directory,
		maxFileSize: options.MaxFileSize,
		readOnly:    options.ReadOnly,
		handles:     handles,
	}

	// files are numbered contiguously from zero, the last one
	// present is the one to append to
	for number := uint32(0); ; number += 1 {
		info, err := os.Stat(s.path(BlockFiles, number))
		if nil != err {
			break
		}
		s.current = number
		s.currentSize = uint64(info.Size())
	}

	log.Infof("opened: %q  current file: %d  size: %d", s.directory, s.current, s.currentSize)
	return s, nil
}

// Close - release all open handles
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()
	if nil == s.handles {
		return nil
	}
	s.handles.Purge()
	s.handles = nil
	s.log.Info("closed")
	return nil
}

// Current - the block file being appended to and its size
func (s *Store) Current() (uint32, uint64) {
	s.Lock()
	defer s.Unlock()
	return s.current, s.currentSize
}

// WriteBlock - append raw block bytes, rolling over to a new file when
// the current one would exceed the maximum size
func (s *Store) WriteBlock(data []byte) (Location, error) {
	s.Lock()
	defer s.Unlock()

	err := s.writable(data)
	if nil != err {
		return Location{}, err
	}

	if s.currentSize > 0 && s.currentSize+uint64(len(data)) > s.maxFileSize {
		s.current += 1
		s.currentSize = 0
		s.log.Infof("start new block file: %d", s.current)
	}

	offset, err := appendFile(s.path(BlockFiles, s.current), data)
	if nil != err {
		s.log.Errorf("write block file: %d  error: %s", s.current, err)
		return Location{}, err
	}
	s.currentSize = offset + uint64(len(data))

	location := Location{
		File:   s.current,
		Offset: offset,
		Length: uint32(len(data)),
	}
	s.log.Debugf("block written: %s", location)
	return location, nil
}

// WriteUndo - append an undo record to the rev file paired with the
// given block file
func (s *Store) WriteUndo(file uint32, data []byte) (Location, error) {
	s.Lock()
	defer s.Unlock()

	err := s.writable(data)
	if nil != err {
		return Location{}, err
	}

	offset, err := appendFile(s.path(UndoFiles, file), data)
	if nil != err {
		s.log.Errorf("write undo file: %d  error: %s", file, err)
		return Location{}, err
	}

	location := Location{
		File:   file,
		Offset: offset,
		Length: uint32(len(data)),
	}
	s.log.Debugf("undo written: %s", location)
	return location, nil
}

// ReadBlock - read the raw block bytes at a location
func (s *Store) ReadBlock(location Location) ([]byte, error) {
	return s.read(BlockFiles, location)
}

// ReadUndo - read the undo record at a location
func (s *Store) ReadUndo(location Location) ([]byte, error) {
	return s.read(UndoFiles, location)
}

// Truncate - discard a record and everything after it
//
// used to give back space when the index batch referring to a freshly
// written record could not be committed
func (s *Store) Truncate(kind Kind, location Location) error {
	s.Lock()
	defer s.Unlock()

	if nil == s.handles {
		return fault.ErrDatabaseClosed
	}
	if s.readOnly {
		return fault.ErrReadOnly
	}

	err := os.Truncate(s.path(kind, location.File), int64(location.Offset))
	if nil != err {
		return fault.Backend("flatfile truncate", err)
	}
	if BlockFiles == kind && location.File == s.current {
		s.currentSize = location.Offset
	}
	s.log.Debugf("truncated %s file: %d  at: %d", kind, location.File, location.Offset)
	return nil
}

func (s *Store) read(kind Kind, location Location) ([]byte, error) {
	if location.IsNone() {
		return nil, fault.ErrNoLocation
	}

	s.Lock()
	defer s.Unlock()

	if nil == s.handles {
		return nil, fault.ErrDatabaseClosed
	}

	f, err := s.handle(kind, location.File)
	if nil != err {
		return nil, err
	}

	buffer := make([]byte, location.Length)
	n, err := f.ReadAt(buffer, int64(location.Offset))
	if n == len(buffer) {
		return buffer, nil
	}
	if nil == err || io.EOF == err {
		return nil, fault.ErrShortRead
	}
	return nil, fault.Backend("flatfile read", err)
}

// fetch a cached read handle or open a new one
func (s *Store) handle(kind Kind, number uint32) (*os.File, error) {
	key := handleKey{
		kind:   kind,
		number: number,
	}
	if value, ok := s.handles.Get(key); ok {
		return value.(*os.File), nil
	}

	f, err := os.Open(s.path(kind, number))
	if nil != err {
		return nil, fault.Backend("flatfile open", err)
	}
	s.handles.Add(key, f)
	return f, nil
}

func (s *Store) writable(data []byte) error {
	if nil == s.handles {
		return fault.ErrDatabaseClosed
	}
	if s.readOnly {
		return fault.ErrReadOnly
	}
	if 0 == len(data) {
		return fault.ErrEmptyRecord
	}
	if uint64(len(data)) > math.MaxUint32 {
		return fault.ErrRecordTooLarge
	}
	return nil
}

func (s *Store) path(kind Kind, number uint32) string {
	return filepath.Join(s.directory, fmt.Sprintf("%s%05d.dat", kind, number))
}

// append data to a file and sync, returns the offset it was written at
func appendFile(name string, data []byte) (uint64, error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE, 0600)
	if nil != err {
		return 0, fault.Backend("flatfile open", err)
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if nil != err {
		return 0, fault.Backend("flatfile seek", err)
	}

	_, err = f.Write(data)
	if nil != err {
		return 0, fault.Backend("flatfile write", err)
	}

	err = f.Sync()
	if nil != err {
		return 0, fault.Backend("flatfile sync", err)
	}
	return uint64(offset), nil
}
