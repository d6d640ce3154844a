// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Network p2p.API
	counter *counter.Counter
}

// New - create node RPC handler
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, network p2p.API) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Network: network,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	ID           string   `json:"id"`
	Version      string   `json:"version"`
	Uptime       string   `json:"uptime"`
	RPCs         uint64   `json:"rpcs"`
	Peers        uint64   `json:"peers"`
	TopicPeers   int      `json:"topicPeers"`
	RoutingTable int      `json:"routingTable"`
	Connections  uint64   `json:"connections"`
	Listeners    []string `json:"listeners"`
	Topic        string   `json:"topic"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	info, err := node.Network.Info()
	if nil != err {
		return err
	}

	reply.ID = info.ID
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Peers = info.Peers
	reply.TopicPeers = info.TopicPeers
	reply.RoutingTable = info.RoutingTable
	reply.Connections = info.Connections
	reply.Listeners = info.Listeners
	reply.Topic = info.Topic
	return nil
}

// ---

// PeerCountArguments - empty arguments for peer count request
type PeerCountArguments struct{}

// PeerCountReply - number of connected peers
type PeerCountReply struct {
	Count uint64 `json:"count"`
}

// PeerCount - current number of connected peers
func (node *Node) PeerCount(_ *PeerCountArguments, reply *PeerCountReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Count = node.Network.PeerCount()
	return nil
}
