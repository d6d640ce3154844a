// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/event"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
)

// size of the buffer between the network and the event loop
const eventQueueSize = 256

// Event - something the network reports to the event loop
type Event interface {
	isEvent()
}

// ConnectionEstablished - first connection to a peer opened
type ConnectionEstablished struct {
	Peer peer.ID
}

// ConnectionClosed - last connection to a peer closed
type ConnectionClosed struct {
	Peer peer.ID
}

// Message - payload received on the offer topic from another peer
type Message struct {
	Source peer.ID
	Data   []byte
}

func (ConnectionEstablished) isEvent() {}
func (ConnectionClosed) isEvent()      {}
func (Message) isEvent()               {}

// Transport - the network as seen by the event loop
type Transport interface {
	// closed when the transport fails or is closed
	Events() <-chan Event
	Publish(ctx context.Context, data []byte) error
	Close()
}

// offerChannel - the part of gossip.Channel the transport drives
type offerChannel interface {
	Publish(ctx context.Context, data []byte) error
	Next(ctx context.Context) (*pubsub.Message, error)
}

// adapts the host event bus and the gossip subscription to a single
// ordered event channel
type libp2pTransport struct {
	log          *logger.L
	host         host.Host
	channel      offerChannel
	subscription event.Subscription
	events       chan Event
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

func newTransport(h host.Host, channel offerChannel, log *logger.L) (*libp2pTransport, error) {
	subscription, err := h.EventBus().Subscribe(new(event.EvtPeerConnectednessChanged))
	if nil != err {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &libp2pTransport{
		log:          log,
		host:         h,
		channel:      channel,
		subscription: subscription,
		events:       make(chan Event, eventQueueSize),
		cancel:       cancel,
	}

	t.wg.Add(2)
	go t.connections(ctx)
	go t.messages(ctx)

	return t, nil
}

func (t *libp2pTransport) Events() <-chan Event {
	return t.events
}

func (t *libp2pTransport) Publish(ctx context.Context, data []byte) error {
	return t.channel.Publish(ctx, data)
}

// Close - stop both readers, then close the event channel
//
// also run when the subscription fails so the event loop sees the end
// of the stream
func (t *libp2pTransport) Close() {
	t.closeOnce.Do(func() {
		t.cancel()
		t.subscription.Close()
		t.wg.Wait()
		close(t.events)
	})
}

func (t *libp2pTransport) send(ctx context.Context, e Event) bool {
	select {
	case t.events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (t *libp2pTransport) connections(ctx context.Context) {
	defer t.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-t.subscription.Out():
			if !ok {
				return
			}
			e, ok := item.(event.EvtPeerConnectednessChanged)
			if !ok {
				continue
			}
			var ev Event
			switch e.Connectedness {
			case network.Connected:
				ev = ConnectionEstablished{Peer: e.Peer}
			case network.NotConnected:
				ev = ConnectionClosed{Peer: e.Peer}
			default:
				continue
			}
			if !t.send(ctx, ev) {
				return
			}
		}
	}
}

func (t *libp2pTransport) messages(ctx context.Context) {
	defer t.wg.Done()

	self := t.host.ID()
	for {
		m, err := t.channel.Next(ctx)
		if nil != err {
			if nil == ctx.Err() {
				t.log.Errorf("subscription error: %s", err)
				// Close waits for this reader, so it cannot run here
				go t.Close()
			}
			return
		}
		// own publications are delivered locally too
		if m.ReceivedFrom == self {
			continue
		}
		if !t.send(ctx, Message{Source: m.ReceivedFrom, Data: m.Data}) {
			return
		}
	}
}
