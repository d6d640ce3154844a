// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/splash-network/splashd/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()
	c1.Increment()

	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	c1.Decrement()

	if 4 != c1.Uint64() {
		t.Errorf("counter is not 4 after decrementing: %d", c1.Uint64())
	}

	c1.Decrement()
	c1.Decrement()
	c1.Decrement()
	c1.Decrement()

	if !c1.IsZero() {
		t.Errorf("counter did not return to zero: %d", c1.Uint64())
	}

	c1.Decrement()

	// check against underflow, i.e. twos complement -1
	if ^uint64(0) != c1.Uint64() {
		t.Errorf("counter did not underflow: %d", c1.Uint64())
	}
}

// one writer with concurrent readers
func TestGauge(t *testing.T) {

	var g counter.Gauge

	if 0 != g.Uint64() {
		t.Errorf("gauge is not zero at start: %d", g.Uint64())
	}

	const readers = 4
	const limit = 1000

	var wg sync.WaitGroup
	for i := 0; i < readers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint64(0)
			for n := 0; n < limit; n += 1 {
				v := g.Uint64()
				if v < last {
					t.Errorf("gauge went backwards: %d after %d", v, last)
					return
				}
				last = v
			}
		}()
	}

	for v := uint64(1); v <= limit; v += 1 {
		if previous := g.Set(v); previous != v-1 {
			t.Errorf("previous value: %d  expected: %d", previous, v-1)
		}
	}
	wg.Wait()

	if limit != g.Uint64() {
		t.Errorf("final value: %d  expected: %d", g.Uint64(), limit)
	}
}

// slots are bounded by the limit and returned on release
func TestAcquire(t *testing.T) {

	var c counter.Counter

	if c.Acquire(0) {
		t.Fatal("acquired with a zero limit")
	}

	for i := 0; i < 3; i += 1 {
		if !c.Acquire(3) {
			t.Fatalf("acquire: %d failed", i)
		}
	}
	if c.Acquire(3) {
		t.Error("acquired beyond the limit")
	}
	if 3 != c.Uint64() {
		t.Errorf("count: %d  expected: 3", c.Uint64())
	}

	c.Release()
	if !c.Acquire(3) {
		t.Error("released slot not reusable")
	}

	c.Release()
	c.Release()
	c.Release()
	if !c.IsZero() {
		t.Errorf("count did not return to zero: %d", c.Uint64())
	}
}

// concurrent acquirers never exceed the limit
func TestAcquireConcurrent(t *testing.T) {

	var c counter.Counter
	const limit = 5
	const workers = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	held := 0
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !c.Acquire(limit) {
				return
			}
			mu.Lock()
			held += 1
			mu.Unlock()
		}()
	}
	wg.Wait()

	if limit != held {
		t.Errorf("held: %d  expected: %d", held, limit)
	}
	if limit != c.Uint64() {
		t.Errorf("count: %d  expected: %d", c.Uint64(), limit)
	}
}
