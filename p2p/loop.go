// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/gossip"
	"github.com/splash-network/splashd/messagebus"
	"github.com/splash-network/splashd/offer"
	"github.com/splash-network/splashd/util"
)

// limit on a single publish to the topic
const publishTimeout = 10 * time.Second

// Notifier - receives notifications for the host
type Notifier interface {
	Send(command string, parameters ...[]byte)
}

// Summarizer - turns offer text into a summary
type Summarizer interface {
	Summarize(raw string) (*offer.Summary, error)
}

// Loop - the node event loop, the only writer of the peer count
type Loop struct {
	log       *logger.L
	transport Transport
	codec     Summarizer
	dedup     *gossip.Deduplicator
	maximum   int
	metrics   *Metrics
	outbound  <-chan messagebus.Message
	notify    Notifier
	count     *counter.Gauge
	peers     map[peer.ID]struct{}
}

// LoopConfiguration - collaborators of the event loop
type LoopConfiguration struct {
	Transport      Transport
	Codec          Summarizer
	Deduplicator   *gossip.Deduplicator
	MaximumPayload int
	Metrics        *Metrics
	Outbound       <-chan messagebus.Message
	Notify         Notifier
	PeerCount      *counter.Gauge
}

// NewLoop - create an event loop; missing optional parts get defaults
func NewLoop(c LoopConfiguration, log *logger.L) *Loop {
	if nil == c.Deduplicator {
		c.Deduplicator = gossip.NewDeduplicator(gossip.DefaultSeenTTL)
	}
	if c.MaximumPayload <= 0 {
		c.MaximumPayload = gossip.DefaultMaximumPayload
	}
	if nil == c.Metrics {
		c.Metrics = NewMetrics()
	}
	if nil == c.PeerCount {
		c.PeerCount = &counter.PeerCount
	}
	return &Loop{
		log:       log,
		transport: c.Transport,
		codec:     c.Codec,
		dedup:     c.Deduplicator,
		maximum:   c.MaximumPayload,
		metrics:   c.Metrics,
		outbound:  c.Outbound,
		notify:    c.Notify,
		count:     c.PeerCount,
		peers:     make(map[peer.ID]struct{}),
	}
}

// Run - handle one event at a time until shutdown
func (l *Loop) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.log
	log.Info("starting…")

	events := l.transport.Events()

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case e, ok := <-events:
			if !ok {
				log.Critical("transport event stream closed")
				break loop
			}
			l.handleEvent(e)

		case item := <-l.outbound:
			l.handleOutbound(item)
		}
	}
	log.Info("shutting down…")
	log.Flush()
}

func (l *Loop) handleEvent(e Event) {
	switch ev := e.(type) {
	case ConnectionEstablished:
		if _, ok := l.peers[ev.Peer]; ok {
			return
		}
		l.peers[ev.Peer] = struct{}{}
		util.LogInfo(l.log, util.CoGreen, fmt.Sprintf("connected: %s  peers: %d", ev.Peer.ShortString(), len(l.peers)))
		l.peerStatus()

	case ConnectionClosed:
		if _, ok := l.peers[ev.Peer]; !ok {
			return
		}
		delete(l.peers, ev.Peer)
		util.LogInfo(l.log, util.CoYellow, fmt.Sprintf("disconnected: %s  peers: %d", ev.Peer.ShortString(), len(l.peers)))
		l.peerStatus()

	case Message:
		l.handleMessage(ev)

	default:
		l.log.Warnf("unexpected event: %T", e)
	}
}

// record the count before telling the host so a reader woken by the
// notification sees the new value
func (l *Loop) peerStatus() {
	n := uint64(len(l.peers))
	l.count.Set(n)
	l.metrics.Peers.Set(float64(n))
	l.notify.Send(messagebus.PeerStatus, []byte(strconv.FormatUint(n, 10)))
}

func (l *Loop) handleMessage(m Message) {
	l.metrics.Received.Inc()

	if nil != gossip.CheckSize(m.Data, l.maximum) {
		l.drop(dropOversize, m.Source, "oversize payload: %d bytes", len(m.Data))
		return
	}

	if !l.dedup.FirstSighting(m.Data) {
		l.metrics.Duplicates.Inc()
		l.log.Debugf("duplicate from: %s", m.Source.ShortString())
		return
	}

	raw := string(m.Data)
	if !strings.HasPrefix(raw, offer.Prefix) {
		l.drop(dropFormat, m.Source, "not an offer")
		return
	}

	summary, err := l.codec.Summarize(raw)
	if nil != err {
		l.drop(dropInvalid, m.Source, "parse error: %s", err)
		return
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(summary)
	if nil != err {
		l.drop(dropInvalid, m.Source, "marshal error: %s", err)
		return
	}

	l.metrics.Delivered.Inc()
	util.LogInfo(l.log, util.CoCyan, fmt.Sprintf("offer: %s  from: %s", summary.ID, m.Source.ShortString()))
	l.notify.Send(messagebus.NewOffer, data)
}

func (l *Loop) drop(reason string, source peer.ID, format string, args ...interface{}) {
	l.metrics.Dropped.WithLabelValues(reason).Inc()
	l.log.Debugf("drop from: %s  "+format, append([]interface{}{source.ShortString()}, args...)...)
}

func (l *Loop) handleOutbound(item messagebus.Message) {
	if messagebus.PublishOffer != item.Command || 1 != len(item.Parameters) {
		l.log.Warnf("unexpected command: %q  parameters: %d", item.Command, len(item.Parameters))
		return
	}
	data := item.Parameters[0]

	if err := gossip.CheckSize(data, l.maximum); nil != err {
		l.metrics.PublishFailures.Inc()
		l.log.Errorf("publish rejected: %s", err)
		return
	}

	// so the echo of this offer from other peers is not delivered back
	l.dedup.FirstSighting(data)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := l.transport.Publish(ctx, data)
	if nil != err {
		l.metrics.PublishFailures.Inc()
		util.LogWarn(l.log, util.CoLightRed, fmt.Sprintf("publish error: %s", err))
		return
	}
	l.metrics.Published.Inc()
	util.LogInfo(l.log, util.CoBlue, fmt.Sprintf("published: %s", offer.ID(string(data))))
}
