// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/splash-network/splashd/addressbook"
	"github.com/splash-network/splashd/background"
	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/gossip"
	"github.com/splash-network/splashd/messagebus"
	"github.com/splash-network/splashd/offer"
	"github.com/splash-network/splashd/routing"
	"github.com/splash-network/splashd/util"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Listen           []string `gluamapper:"listen" json:"listen"`
	Announce         []string `gluamapper:"announce" json:"announce"`
	PrivateKey       string   `gluamapper:"private_key" json:"-"`
	Connect          []string `gluamapper:"connect" json:"connect,omitempty"`
	Nodes            string   `gluamapper:"nodes" json:"nodes"`
	Topic            string   `gluamapper:"topic" json:"topic"`
	MaximumPayload   int      `gluamapper:"maximum_payload" json:"maximum_payload"`
	HeartbeatSeconds int      `gluamapper:"heartbeat_seconds" json:"heartbeat_seconds"`
	SeenTTLSeconds   int      `gluamapper:"seen_ttl_seconds" json:"seen_ttl_seconds"`
	BootstrapTimeout int      `gluamapper:"bootstrap_timeout" json:"bootstrap_timeout"`
	LowWater         int      `gluamapper:"low_water" json:"low_water"`
	HighWater        int      `gluamapper:"high_water" json:"high_water"`
	DHTProtocol      string   `gluamapper:"dht_protocol" json:"dht_protocol"`
	IdentifyProtocol string   `gluamapper:"identify_protocol" json:"identify_protocol"`
}

// Gossip - the gossip part of the configuration
func (c *Configuration) Gossip() gossip.Configuration {
	return gossip.Configuration{
		Topic:          c.Topic,
		MaximumPayload: c.MaximumPayload,
		Heartbeat:      time.Duration(c.HeartbeatSeconds) * time.Second,
		SeenTTL:        time.Duration(c.SeenTTLSeconds) * time.Second,
	}.WithDefaults()
}

// Host - the host part of the configuration
func (c *Configuration) Host() HostConfiguration {
	return HostConfiguration{
		Listen:           c.Listen,
		Announce:         c.Announce,
		IdentifyProtocol: c.IdentifyProtocol,
		LowWater:         c.LowWater,
		HighWater:        c.HighWater,
		Routing: routing.Configuration{
			Protocol:         c.DHTProtocol,
			BootstrapTimeout: time.Duration(c.BootstrapTimeout) * time.Second,
		},
	}
}

// Node - a running p2p node
type Node struct {
	sync.RWMutex // to allow locking

	log       *logger.L
	version   string
	host      host.Host
	table     *routing.Table
	channel   *gossip.Channel
	transport *libp2pTransport
	codec     *offer.Codec
	maximum   int
	metrics   *Metrics
	network   MetricsNetwork
	cancel    context.CancelFunc

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// Info - node status for the host
type Info struct {
	ID           string   `json:"id"`
	Version      string   `json:"version"`
	Listeners    []string `json:"listeners"`
	Topic        string   `json:"topic"`
	Peers        uint64   `json:"peers"`
	TopicPeers   int      `json:"topicPeers"`
	RoutingTable int      `json:"routingTable"`
	Connections  uint64   `json:"connections"`
}

// global data
var globalData Node

// Initialise - start the node; any failure here is fatal to the caller
func Initialise(configuration *Configuration, book *addressbook.Book, codec *offer.Codec, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("p2p")
	globalData.log = log
	globalData.version = version
	globalData.codec = codec

	log.Info("starting…")

	key, err := util.PeerKey(configuration.PrivateKey)
	if nil != err {
		log.Errorf("private key error: %s", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	h, table, err := NewHost(ctx, key, configuration.Host(), log)
	if nil != err {
		cancel()
		log.Errorf("host error: %s", err)
		return err
	}
	globalData.network.networkMonitor(h, log)

	gc := configuration.Gossip()
	channel, err := gossip.Join(ctx, h, gc, logger.New("gossip"))
	if nil != err {
		cancel()
		h.Close()
		log.Errorf("gossip error: %s", err)
		return err
	}

	transport, err := newTransport(h, channel, log)
	if nil != err {
		cancel()
		channel.Close()
		h.Close()
		log.Errorf("transport error: %s", err)
		return err
	}

	seeds := book.AddrInfos()
	if 0 == len(seeds) {
		log.Warn("no bootstrap peers")
	}
	for _, info := range seeds {
		table.AddAddress(info)
	}
	table.Bootstrap(seeds)

	metrics := NewMetrics()
	loop := NewLoop(LoopConfiguration{
		Transport:      transport,
		Codec:          codec,
		Deduplicator:   gossip.NewDeduplicator(gc.SeenTTL),
		MaximumPayload: gc.MaximumPayload,
		Metrics:        metrics,
		Outbound:       messagebus.Bus.Offers.Chan(),
		Notify:         messagebus.Bus.Notifications,
		PeerCount:      &counter.PeerCount,
	}, log)

	globalData.host = h
	globalData.table = table
	globalData.channel = channel
	globalData.transport = transport
	globalData.maximum = gc.MaximumPayload
	globalData.metrics = metrics
	globalData.cancel = cancel

	log.Info("start background…")

	processes := background.Processes{
		loop,
	}
	globalData.background = background.Start(processes, nil)

	globalData.initialised = true
	return nil
}

// Finalise - stop the event loop and close the host
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	log := globalData.log
	log.Info("shutting down…")
	log.Flush()

	globalData.background.Stop()
	globalData.transport.Close()
	globalData.channel.Close()
	err := globalData.table.Close()
	if nil != err {
		log.Warnf("routing close error: %s", err)
	}
	err = globalData.host.Close()
	if nil != err {
		log.Warnf("host close error: %s", err)
	}
	globalData.cancel()

	globalData.initialised = false

	log.Info("finished")
	log.Flush()

	return nil
}

// Submit - check an offer and queue it for broadcast
//
// the summary is computed here so the caller gets a parse error
// straight away; the event loop only checks the size again
func Submit(raw string) (*offer.Summary, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	data := []byte(raw)
	if err := gossip.CheckSize(data, globalData.maximum); nil != err {
		return nil, err
	}

	summary, err := globalData.codec.Summarize(raw)
	if nil != err {
		return nil, err
	}

	if !messagebus.Bus.Offers.TrySend(messagebus.PublishOffer, data) {
		return nil, fault.PublishQueueFull
	}

	return summary, nil
}

// PeerCount - number of connected peers
func PeerCount() uint64 {
	return counter.PeerCount.Uint64()
}

// GetInfo - status of the running node
func GetInfo() (*Info, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	listeners := []string{}
	for _, a := range globalData.host.Addrs() {
		listeners = append(listeners, a.String()+"/p2p/"+globalData.host.ID().String())
	}

	return &Info{
		ID:           globalData.host.ID().String(),
		Version:      globalData.version,
		Listeners:    listeners,
		Topic:        globalData.channel.Topic(),
		Peers:        counter.PeerCount.Uint64(),
		TopicPeers:   globalData.channel.Peers(),
		RoutingTable: globalData.table.Size(),
		Connections:  globalData.network.ConnectionCount(),
	}, nil
}

// GetMetrics - the prometheus metrics of the running node, nil before
// initialisation
func GetMetrics() *Metrics {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.metrics
}

// AddBootstrap - add newly resolved bootstrap addresses to the routing
// table; addresses without a peer identity are skipped
func AddBootstrap(addresses []ma.Multiaddr) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return
	}

	for _, a := range addresses {
		info, err := peer.AddrInfoFromP2pAddr(a)
		if nil != err {
			globalData.log.Warnf("bootstrap address: %s  error: %s", a, err)
			continue
		}
		globalData.table.AddAddress(*info)
	}
}

// API - the running node as seen by the host interfaces
type API interface {
	Submit(raw string) (*offer.Summary, error)
	PeerCount() uint64
	Info() (*Info, error)
}

type api struct{}

// Get - access to the running node
func Get() API {
	return api{}
}

func (api) Submit(raw string) (*offer.Summary, error) { return Submit(raw) }
func (api) PeerCount() uint64                         { return PeerCount() }
func (api) Info() (*Info, error)                      { return GetInfo() }
