// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bundle - the binary layout of a spend bundle
//
// a bundle is a count prefixed sequence of coin spends followed by the
// aggregated signature:
//
//   u32 count
//   count × {parent[32] puzzle_hash[32] amount u64 puzzle solution}
//   signature[96]
//
// all integers are big endian, puzzle and solution are serialised
// programs kept as raw bytes so a bundle packs back to exactly the bytes
// it was unpacked from
package bundle
