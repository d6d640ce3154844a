// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	AmountOverflow               = InvalidError("amount overflow")
	CatalogUnavailable           = ProcessError("catalog unavailable")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConnectionLimitReached       = ProcessError("connection limit reached")
	DecompressionFailure         = InvalidError("decompression failure")
	EmptyBundle                  = InvalidError("spend bundle has no coin spends")
	InvalidAssetID               = InvalidError("invalid asset id")
	InvalidCount                 = InvalidError("invalid count")
	InvalidDictionaryModule      = InvalidError("invalid dictionary module")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidLoggerChannel         = InvalidError("invalid logger channel")
	InvalidNodeDomain            = InvalidError("invalid node domain")
	InvalidPeerAddress           = InvalidError("invalid peer address")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidSettlement            = InvalidError("invalid settlement payments solution")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MalformedBundle              = InvalidError("malformed bundle")
	MalformedEncoding            = InvalidError("malformed encoding")
	MalformedProgram             = InvalidError("malformed program")
	MissingPeerIdentity          = InvalidError("peer address has no peer identity")
	MissingParameters            = InvalidError("missing parameters")
	ModuleNotBundled             = NotFoundError("module not bundled")
	NoBootstrapPeers             = NotFoundError("no bootstrap peers")
	NoListenAddrs                = InvalidError("no listen addresses")
	NotInitialised               = NotFoundError("not initialised")
	PayloadTooLarge              = LengthError("payload too large")
	ProgramTooLarge              = LengthError("program too large")
	PublishQueueFull             = ProcessError("publish queue full")
	RateLimiting                 = InvalidError("rate limiting")
	TrailingBytes                = LengthError("trailing bytes")
	UnrecognizedFormat           = InvalidError("unrecognized format")
	UnsupportedBackReference     = InvalidError("unsupported back reference")
	UnsupportedVersion           = InvalidError("unsupported compression version")
	WrongNetworkFormat           = InvalidError("wrong human readable part")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
