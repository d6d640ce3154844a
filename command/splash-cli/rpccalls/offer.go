// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/splash-network/splashd/rpc/offers"
)

// Submit - validate an offer and publish it on the network
func (c *Client) Submit(offer string) (*offers.SummaryReply, error) {
	var reply offers.SummaryReply
	if err := c.call("Offer.Submit", &offers.SubmitArguments{Offer: offer}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Parse - summarise an offer on the node without publishing
func (c *Client) Parse(offer string) (*offers.SummaryReply, error) {
	var reply offers.SummaryReply
	if err := c.call("Offer.Parse", &offers.SubmitArguments{Offer: offer}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
