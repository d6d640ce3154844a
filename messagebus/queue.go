// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	// outbound offers waiting for the event loop
	OfferQueueSize = 100

	// default per listener buffer for notifications
	defaultBroadcastSize = 50
)

// commands carried on the bus
const (
	PublishOffer = "offer"       // host → node: Parameters[0] is the offer text
	PeerStatus   = "peer-status" // node → host: Parameters[0] is the decimal peer count
	NewOffer     = "new-offer"   // node → host: Parameters[0] is the summary JSON
)

// Message - a command with its parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - bounded FIFO with one reader
type Queue struct {
	c chan Message
}

// BroadcastQueue - delivers each message to every current listener,
// a listener that is not keeping up misses messages
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
}

// BusType - all the queues
type BusType struct {
	Offers        *Queue          // host → node: offer strings to publish
	Notifications *BroadcastQueue // node → host: peer-status and new-offer
}

// Bus - the process wide queues
var Bus = BusType{
	Offers:        NewQueue(OfferQueueSize),
	Notifications: NewBroadcastQueue(),
}

// NewQueue - create a bounded queue
func NewQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, blocking while the queue is full
func (queue *Queue) Send(command string, parameters ...[]byte) {
	queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// TrySend - queue a message unless the queue is full
func (queue *Queue) TrySend(command string, parameters ...[]byte) bool {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// NewBroadcastQueue - create a broadcast queue with no listeners
func NewBroadcastQueue() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: []chan Message{},
	}
}

// Send - deliver to all listeners without blocking
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.Lock()
	defer queue.Unlock()

	for _, listener := range queue.listeners {
		select {
		case listener <- m:
		default:
		}
	}
}

// Chan - add a listener, size <= 0 selects the default buffer
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultBroadcastSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, listener := range queue.listeners {
		if (<-chan Message)(listener) == c {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(listener)
			return
		}
	}
}
