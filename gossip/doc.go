// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gossip - flood broadcast of offer payloads
//
// messages are identified by a hash of their content, not by sender
// or sequence number, so a payload that arrives by more than one path
// is recognised as the same message
package gossip
