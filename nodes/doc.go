// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodes - find bootstrap peers through DNS
//
// a nodes domain publishes TXT records of the form:
//
//   dnsaddr=/ip4/192.0.2.1/tcp/4001/p2p/12D3KooW...
//
// and static addresses may use /dnsaddr/ which is expanded to the
// addresses it publishes
package nodes
