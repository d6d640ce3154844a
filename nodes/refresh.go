// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodes

import (
	"time"

	"github.com/bitmark-inc/logger"
	ma "github.com/multiformats/go-multiaddr"
)

// Refresher - background process re-fetching the nodes domain
type Refresher struct {
	log      *logger.L
	domain   string
	lookuper Lookuper
	interval func() time.Duration
	sink     func([]ma.Multiaddr)
}

// NewRefresher - addresses found on each fetch are passed to sink
func NewRefresher(log *logger.L, domain string, lookuper Lookuper, sink func([]ma.Multiaddr)) *Refresher {
	return &Refresher{
		log:      log,
		domain:   domain,
		lookuper: lookuper,
		interval: func() time.Duration { return Interval(domain, log) },
		sink:     sink,
	}
}

// Run - background processing interface
func (r *Refresher) Run(_ interface{}, shutdown <-chan struct{}) {
	timer := time.After(r.interval())

loop:
	for {
		select {
		case <-timer:
			timer = time.After(r.interval())
			addresses, err := r.lookuper.Lookup(r.domain)
			if nil != err {
				continue loop
			}
			r.log.Infof("refreshed: %s  addresses: %d", r.domain, len(addresses))
			r.sink(addresses)

		case <-shutdown:
			break loop
		}
	}
}
