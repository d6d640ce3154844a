// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

import (
	"strings"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/offer"
	"github.com/splash-network/splashd/p2p"
	"github.com/splash-network/splashd/rpc/ratelimit"
)

const (
	rateLimitOffer = 50
	rateBurstOffer = 20
)

// Offer - type for the RPC
type Offer struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Network p2p.API
	Codec   p2p.Summarizer
}

// SubmitArguments - an offer file in bech32m text form
type SubmitArguments struct {
	Offer string `json:"offer"`
}

// SummaryReply - result of a submitted or parsed offer
type SummaryReply struct {
	offer.Summary
}

// New - create offer RPC handler
func New(log *logger.L, network p2p.API, codec p2p.Summarizer) *Offer {
	return &Offer{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOffer, rateBurstOffer),
		Network: network,
		Codec:   codec,
	}
}

// Submit - validate an offer and queue it for gossip
func (o *Offer) Submit(arguments *SubmitArguments, reply *SummaryReply) error {

	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	raw := strings.TrimSpace(arguments.Offer)
	if "" == raw {
		return fault.MissingParameters
	}

	summary, err := o.Network.Submit(raw)
	if nil != err {
		o.Log.Debugf("submit error: %s", err)
		return err
	}

	o.Log.Infof("submitted offer: %s", summary.ID)
	reply.Summary = *summary
	return nil
}

// Parse - summarise an offer without publishing it
func (o *Offer) Parse(arguments *SubmitArguments, reply *SummaryReply) error {

	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	raw := strings.TrimSpace(arguments.Offer)
	if "" == raw {
		return fault.MissingParameters
	}

	summary, err := o.Codec.Summarize(raw)
	if nil != err {
		return err
	}

	reply.Summary = *summary
	return nil
}
