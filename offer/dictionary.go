// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offer

import (
	"os"

	"github.com/splash-network/splashd/fault"
)

// Dictionaries - ordered compression dictionary entries
//
// version v compresses against the concatenation of the first v
// entries, version 0 uses no dictionary
type Dictionaries [][]byte

// LoadDictionaries - read dictionary entries from files, in order
//
// an empty list selects the shared dictionary built into the binary
func LoadDictionaries(files []string) (Dictionaries, error) {
	if 0 == len(files) {
		d, _, err := DefaultDictionaries()
		return d, err
	}

	d := make(Dictionaries, 0, len(files))
	for _, name := range files {
		entry, err := os.ReadFile(name)
		if nil != err {
			return nil, err
		}
		d = append(d, entry)
	}
	return d, nil
}

// Latest - the highest version these entries support
func (d Dictionaries) Latest() uint16 {
	return uint16(len(d))
}

// For - the dictionary used by a version
func (d Dictionaries) For(version uint16) ([]byte, error) {
	if int(version) > len(d) {
		return nil, fault.UnsupportedVersion
	}
	if 0 == version {
		return nil, nil
	}
	size := 0
	for _, entry := range d[:version] {
		size += len(entry)
	}
	dict := make([]byte, 0, size)
	for _, entry := range d[:version] {
		dict = append(dict, entry...)
	}
	return dict, nil
}
