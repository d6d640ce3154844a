// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gossip

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	pb "github.com/libp2p/go-libp2p-pubsub/pb"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/splash-network/splashd/fault"
)

// defaults
const (
	DefaultTopic          = "/splash/offers/1"
	DefaultMaximumPayload = 300 * 1024
	DefaultHeartbeat      = 5 * time.Second
	DefaultSeenTTL        = 2 * time.Minute

	// room for the pubsub envelope around a payload
	envelopeAllowance = 4096
)

// Configuration - gossip parameters
type Configuration struct {
	Topic          string
	MaximumPayload int
	Heartbeat      time.Duration
	SeenTTL        time.Duration
}

// WithDefaults - copy of the configuration with blank fields filled in
func (c Configuration) WithDefaults() Configuration {
	if "" == c.Topic {
		c.Topic = DefaultTopic
	}
	if c.MaximumPayload <= 0 {
		c.MaximumPayload = DefaultMaximumPayload
	}
	if c.Heartbeat <= 0 {
		c.Heartbeat = DefaultHeartbeat
	}
	if c.SeenTTL <= 0 {
		c.SeenTTL = DefaultSeenTTL
	}
	return c
}

// MessageID - content identity of a payload
func MessageID(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 10)
}

func pubsubMessageID(m *pb.Message) string {
	return MessageID(m.Data)
}

// CheckSize - reject payloads over the limit
func CheckSize(data []byte, maximum int) error {
	if len(data) > maximum {
		return fault.PayloadTooLarge
	}
	return nil
}

// Options - gossipsub router options for a configuration
func Options(c Configuration) []pubsub.Option {
	c = c.WithDefaults()

	params := pubsub.DefaultGossipSubParams()
	params.HeartbeatInterval = c.Heartbeat

	return []pubsub.Option{
		pubsub.WithGossipSubParams(params),
		pubsub.WithMessageIdFn(pubsubMessageID),
		pubsub.WithMaxMessageSize(c.MaximumPayload + envelopeAllowance),
		pubsub.WithSeenMessagesTTL(c.SeenTTL),
		pubsub.WithMessageSignaturePolicy(pubsub.StrictSign),
	}
}

// Validator - topic validator rejecting oversized payloads before they
// are delivered or forwarded
func Validator(maximum int) pubsub.ValidatorEx {
	return func(_ context.Context, _ peer.ID, m *pubsub.Message) pubsub.ValidationResult {
		if nil != CheckSize(m.Data, maximum) {
			return pubsub.ValidationReject
		}
		return pubsub.ValidationAccept
	}
}
