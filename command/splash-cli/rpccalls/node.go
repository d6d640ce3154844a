// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/splash-network/splashd/rpc/node"
)

// Info - request status from splashd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// PeerCount - number of connected peers
func (c *Client) PeerCount() (uint64, error) {
	var reply node.PeerCountReply
	if err := c.call("Node.PeerCount", &node.PeerCountArguments{}, &reply); err != nil {
		return 0, err
	}
	return reply.Count, nil
}
