// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package offer - decode an offer string into a spend bundle and
// summarise the assets it moves
//
// the text form is bech32m with the "offer" human readable part; the
// data is a two byte big endian compression version followed by a zlib
// stream compressed against a versioned dictionary; the decompressed
// bytes are a packed spend bundle
package offer
