// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - number of live connections held by a listener
type Counter uint64

// Gauge - a value owned by a single writer, e.g. the connected peer
// total maintained by the p2p event loop
type Gauge struct {
	value atomic.Uint64
}

// PeerCount - connected peers as last observed by the node
var PeerCount Gauge

// Acquire - take one slot if fewer than limit are in use
//
// a successful Acquire must be paired with Release
func (c *Counter) Acquire(limit uint64) bool {
	p := (*uint64)(c)
	for {
		n := atomic.LoadUint64(p)
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64(p, n, n+1) {
			return true
		}
	}
}

// Release - give back a slot taken by Acquire
func (c *Counter) Release() {
	atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Increment - add one, returns the new total
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract one, returns the new total
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - current total
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true when nothing is held
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}

// Set - store a new value, returns the previous one
func (g *Gauge) Set(value uint64) uint64 {
	return g.value.Swap(value)
}

// Uint64 - snapshot of the current value
func (g *Gauge) Uint64() uint64 {
	return g.value.Load()
}
