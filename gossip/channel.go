// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gossip

import (
	"context"

	"github.com/bitmark-inc/logger"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
)

// Channel - the subscription to the offer topic
type Channel struct {
	log          *logger.L
	maximum      int
	pubsub       *pubsub.PubSub
	topic        *pubsub.Topic
	subscription *pubsub.Subscription
}

// Join - start a gossipsub router on the host and subscribe to the topic
func Join(ctx context.Context, h host.Host, c Configuration, log *logger.L) (*Channel, error) {
	c = c.WithDefaults()

	ps, err := pubsub.NewGossipSub(ctx, h, Options(c)...)
	if nil != err {
		return nil, err
	}

	err = ps.RegisterTopicValidator(c.Topic, Validator(c.MaximumPayload))
	if nil != err {
		return nil, err
	}

	topic, err := ps.Join(c.Topic)
	if nil != err {
		return nil, err
	}

	subscription, err := topic.Subscribe()
	if nil != err {
		topic.Close()
		return nil, err
	}

	log.Infof("joined topic: %s  maximum payload: %d  heartbeat: %s", c.Topic, c.MaximumPayload, c.Heartbeat)

	return &Channel{
		log:          log,
		maximum:      c.MaximumPayload,
		pubsub:       ps,
		topic:        topic,
		subscription: subscription,
	}, nil
}

// Publish - send a payload to the topic
func (ch *Channel) Publish(ctx context.Context, data []byte) error {
	if err := CheckSize(data, ch.maximum); nil != err {
		return err
	}
	return ch.topic.Publish(ctx, data)
}

// Next - wait for the next message on the topic
func (ch *Channel) Next(ctx context.Context) (*pubsub.Message, error) {
	return ch.subscription.Next(ctx)
}

// Topic - name of the joined topic
func (ch *Channel) Topic() string {
	return ch.topic.String()
}

// Peers - peers known to be subscribed to the topic
func (ch *Channel) Peers() int {
	return len(ch.topic.ListPeers())
}

// Close - leave the topic
func (ch *Channel) Close() {
	ch.subscription.Cancel()
	err := ch.topic.Close()
	if nil != err {
		ch.log.Warnf("close topic error: %s", err)
	}
}
