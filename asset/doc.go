// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - classify a puzzle as one of a closed set of shapes
//
// the shapes are tried in a fixed order:
// a. a fungible token wrapper, identified by its hex asset id
// b. a non-fungible item, identified by its launcher id as a bech32m
//    address
// c. the native asset
//
// a token that wraps an item is a token
package asset
