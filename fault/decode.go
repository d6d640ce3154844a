// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// DecodeError - one of the decode categories together with the
// lower level cause
type DecodeError struct {
	Category InvalidError
	Err      error
}

// NewDecodeError - attach a cause to a decode category
func NewDecodeError(category InvalidError, err error) error {
	return &DecodeError{
		Category: category,
		Err:      err,
	}
}

func (e *DecodeError) Error() string {
	if nil == e.Err {
		return string(e.Category)
	}
	return string(e.Category) + ": " + e.Err.Error()
}

// Is - matches the category so errors.Is(err, fault.MalformedBundle) works
func (e *DecodeError) Is(target error) bool {
	c, ok := target.(InvalidError)
	return ok && c == e.Category
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseFailure - the only failure returned when producing an offer summary
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return "parse failure: " + e.Err.Error()
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// categories reported to a host, in the order of the decode steps
var decodeCategories = []InvalidError{
	UnrecognizedFormat,
	MalformedEncoding,
	DecompressionFailure,
	MalformedBundle,
}

// Category - the decode category of an error or blank if it is none
// of the decode categories
func Category(err error) string {
	for _, c := range decodeCategories {
		if errors.Is(err, c) {
			return string(c)
		}
	}
	return ""
}
