// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/go-zeromq/zmq4"

	"github.com/splash-network/splashd/messagebus"
	"github.com/splash-network/splashd/util"
)

// notifications buffered per broadcaster
const queueSize = 100

type broadcaster struct {
	log      *logger.L
	sockets  []zmq4.Socket
	queue    *messagebus.BroadcastQueue
	listener <-chan messagebus.Message
}

// endpoint - accept "host:port" or a full zmq endpoint
func endpoint(address string) (string, error) {
	if strings.Contains(address, "://") {
		return address, nil
	}
	_, ip, port, err := util.ParseHostPort(address)
	if nil != err {
		return "", err
	}
	if strings.Contains(ip, ":") {
		ip = "[" + ip + "]"
	}
	return "tcp://" + ip + ":" + port, nil
}

// one PUB socket per address
func newBroadcaster(ctx context.Context, log *logger.L, queue *messagebus.BroadcastQueue, addresses []string) (*broadcaster, error) {
	sockets := []zmq4.Socket{}
	closeAll := func() {
		for _, s := range sockets {
			s.Close()
		}
	}

	for _, address := range util.DualStackAddrToIPV4IPV6(addresses) {
		ep, err := endpoint(address)
		if nil != err {
			log.Errorf("broadcast address: %q  error: %s", address, err)
			closeAll()
			return nil, err
		}
		socket := zmq4.NewPub(ctx)
		err = socket.Listen(ep)
		if nil != err {
			log.Errorf("bind: %q  error: %s", ep, err)
			socket.Close()
			closeAll()
			return nil, err
		}
		log.Infof("publishing on: %s", socket.Addr())
		sockets = append(sockets, socket)
	}

	return &broadcaster{
		log:      log,
		sockets:  sockets,
		queue:    queue,
		listener: queue.Chan(queueSize),
	}, nil
}

// Run - forward notifications as [event, json] frames until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.listener:
			if !ok {
				break loop
			}
			brdc.process(item)
		}
	}

	brdc.queue.Release(brdc.listener)
	for _, s := range brdc.sockets {
		err := s.Close()
		if nil != err {
			log.Warnf("close error: %s", err)
		}
	}
	log.Info("stopped")
}

func (brdc *broadcaster) process(item messagebus.Message) {
	if 1 != len(item.Parameters) {
		brdc.log.Warnf("notification: %q  parameters: %d", item.Command, len(item.Parameters))
		return
	}

	m := zmq4.NewMsgFrom([]byte(item.Command), item.Parameters[0])
	for _, s := range brdc.sockets {
		err := s.Send(m)
		if nil != err {
			brdc.log.Errorf("send: %s  error: %s", item.Command, err)
		}
	}
	brdc.log.Debugf("sent: %s  bytes: %d", item.Command, len(item.Parameters[0]))
}
