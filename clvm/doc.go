// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package clvm - the puzzle and solution program values carried in
// a spend bundle
//
// Programs are binary trees of atoms and pairs.  This package reads
// and writes the serialised form, computes tree hashes and
// recognises curried programs.  Nothing is ever evaluated.
package clvm
