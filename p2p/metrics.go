// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// reasons an inbound payload is dropped
const (
	dropOversize = "oversize"
	dropFormat   = "format"
	dropInvalid  = "invalid"
)

// Metrics - event loop counters on their own registry
type Metrics struct {
	registry *prometheus.Registry

	Peers           prometheus.Gauge
	Received        prometheus.Counter
	Delivered       prometheus.Counter
	Duplicates      prometheus.Counter
	Dropped         *prometheus.CounterVec
	Published       prometheus.Counter
	PublishFailures prometheus.Counter
}

// NewMetrics - create and register the counters
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	f := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Peers: f.NewGauge(prometheus.GaugeOpts{
			Name: "splash_peers",
			Help: "Number of connected peers",
		}),
		Received: f.NewCounter(prometheus.CounterOpts{
			Name: "splash_offers_received_total",
			Help: "Payloads received on the offer topic",
		}),
		Delivered: f.NewCounter(prometheus.CounterOpts{
			Name: "splash_offers_delivered_total",
			Help: "Offers summarised and delivered to the host",
		}),
		Duplicates: f.NewCounter(prometheus.CounterOpts{
			Name: "splash_offers_duplicate_total",
			Help: "Payloads already seen",
		}),
		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "splash_offers_dropped_total",
			Help: "Payloads dropped before delivery",
		}, []string{"reason"}),
		Published: f.NewCounter(prometheus.CounterOpts{
			Name: "splash_offers_published_total",
			Help: "Offers published for the host",
		}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "splash_publish_failures_total",
			Help: "Offers that could not be published",
		}),
	}
}

// Registry - for gathering in tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler - exposition endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
