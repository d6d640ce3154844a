// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queues between the node and the host
//
// offers submitted by the host travel to the node on a bounded FIFO
// queue; notifications from the node are broadcast to every listener
package messagebus
