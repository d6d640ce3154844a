// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gossip

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Deduplicator - remembers message ids for a while
type Deduplicator struct {
	seen *cache.Cache
}

// NewDeduplicator - ids are forgotten after ttl
func NewDeduplicator(ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = DefaultSeenTTL
	}
	return &Deduplicator{
		seen: cache.New(ttl, 2*ttl),
	}
}

// FirstSighting - record a payload, true only the first time it is seen
func (d *Deduplicator) FirstSighting(data []byte) bool {
	return d.FirstSightingOf(MessageID(data))
}

// FirstSightingOf - record an id, true only the first time it is seen
func (d *Deduplicator) FirstSightingOf(id string) bool {
	return nil == d.seen.Add(id, struct{}{}, cache.DefaultExpiration)
}

// Count - number of remembered ids
func (d *Deduplicator) Count() int {
	return d.seen.ItemCount()
}
