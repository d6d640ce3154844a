// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/go-zeromq/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/background"
	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/fixtures"
	"github.com/splash-network/splashd/messagebus"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		address  string
		expected string
		err      error
	}{
		{"127.0.0.1:2135", "tcp://127.0.0.1:2135", nil},
		{"[::1]:2135", "tcp://[::1]:2135", nil},
		{"tcp://127.0.0.1:0", "tcp://127.0.0.1:0", nil},
		{"localhost:2135", "", fault.InvalidIpAddress},
		{"127.0.0.1:0", "", fault.InvalidPortNumber},
	}

	for i, item := range tests {
		actual, err := endpoint(item.address)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.Equal(t, item.expected, actual, "%d: wrong endpoint", i)
	}
}

func TestBroadcastFrames(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := messagebus.NewBroadcastQueue()
	brdc, err := newBroadcaster(ctx, logger.New(fixtures.LogCategory), queue, []string{"tcp://127.0.0.1:0"})
	assert.Nil(t, err, "broadcaster error")

	processes := background.Start(background.Processes{brdc}, nil)
	defer processes.Stop()

	sub := zmq4.NewSub(ctx)
	defer sub.Close()

	err = sub.Dial("tcp://" + brdc.sockets[0].Addr().String())
	assert.Nil(t, err, "dial error")
	err = sub.SetOption(zmq4.OptionSubscribe, "")
	assert.Nil(t, err, "subscribe error")

	received := make(chan zmq4.Msg, 1)
	go func() {
		m, err := sub.Recv()
		if nil == err {
			received <- m
		}
	}()

	// a subscriber misses anything sent before it has joined
	timeout := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case m := <-received:
			assert.Equal(t, 2, len(m.Frames), "wrong frame count")
			assert.Equal(t, messagebus.PeerStatus, string(m.Frames[0]), "wrong event")
			assert.Equal(t, "3", string(m.Frames[1]), "wrong payload")
			return
		case <-tick.C:
			queue.Send(messagebus.PeerStatus, []byte("3"))
		case <-timeout:
			t.Fatal("no notification received")
		}
	}
}

func TestFinaliseNotInitialised(t *testing.T) {
	assert.Equal(t, fault.NotInitialised, Finalise(), "wrong error")
}
