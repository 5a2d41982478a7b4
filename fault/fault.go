// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised        = ExistsError("already initialised")
	ErrBatchEmpty                = InvalidError("batch is empty")
	ErrBlockNotFound             = NotFoundError("block not found")
	ErrDatabaseClosed            = ProcessError("database is closed")
	ErrDatabaseInconsistent      = ProcessError("database version is inconsistent")
	ErrDatabaseVersionTooNew     = ProcessError("database version is newer than this program")
	ErrEmptyRecord               = InvalidError("record is empty")
	ErrInvalidAddress            = InvalidError("invalid address")
	ErrInvalidAddressChecksum    = InvalidError("invalid address checksum")
	ErrInvalidAddressKey         = RecordError("invalid address index entry")
	ErrInvalidBackend            = InvalidError("invalid database backend")
	ErrInvalidBlockIndexEntry    = RecordError("invalid block index entry")
	ErrInvalidChain              = InvalidError("invalid chain")
	ErrInvalidCoinRecord         = RecordError("invalid coin record")
	ErrInvalidColumn             = InvalidError("invalid column")
	ErrInvalidConfiguration      = InvalidError("configuration must return a table")
	ErrInvalidCount              = InvalidError("invalid count")
	ErrInvalidDigestLength       = LengthError("invalid digest length")
	ErrInvalidLocationLength     = LengthError("invalid file location length")
	ErrInvalidOutpointLength     = LengthError("invalid outpoint length")
	ErrInvalidPool               = InvalidError("invalid shielded pool")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrInvalidTipRecord          = RecordError("invalid chain tip record")
	ErrInvalidTxIndexEntry       = RecordError("invalid tx index entry")
	ErrInvalidUndoRecord         = RecordError("invalid undo record")
	ErrInvalidVersionRecord      = RecordError("invalid database version record")
	ErrNoLocation                = NotFoundError("file location is empty")
	ErrNoUndoData                = NotFoundError("block has no undo data")
	ErrNotInitialised            = NotFoundError("not initialised")
	ErrReadOnly                  = ProcessError("database is read only")
	ErrRecordTooLarge            = LengthError("record too large for a flat file")
	ErrShortRead                 = LengthError("short read from block file")
	ErrTipMismatch               = InvalidError("block does not match the chain tip")
	ErrUnsupportedScriptForIndex = InvalidError("script cannot be converted to an address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// BackendError - a failure reported by the storage engine or the file
// system, carrying the operation that triggered it
type BackendError struct {
	Op  string
	Err error
}

// Backend - wrap an engine error, nil stays nil
func Backend(op string, err error) error {
	if nil == err {
		return nil
	}
	return &BackendError{
		Op:  op,
		Err: err,
	}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap - give errors.Is/As access to the engine error
func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsErrBackend - true for engine and file system failures
func IsErrBackend(e error) bool { _, ok := e.(*BackendError); return ok }
