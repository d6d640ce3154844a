// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/splash-network/splashd/catalog"
	"github.com/splash-network/splashd/counter"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/rpc/assets"
	"github.com/splash-network/splashd/rpc/node"
	"github.com/splash-network/splashd/rpc/offers"
)

// Create - an RPC server with the Offer, Node and Asset services
func Create(log *logger.L, version string, rpcCount *counter.Counter, network p2p.API, codec p2p.Summarizer, cat catalog.Catalog) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(offers.New(log, network, codec))
	_ = server.Register(node.New(log, start, version, rpcCount, network))
	_ = server.Register(assets.New(log, cat))

	return server
}
