// Package events allows for the registering and receiving of events by topic.
package events

import (
	"fmt"
	"sync"
)

// Since a message will be dropped if the websocket receiver is not ready to
// receive, this arbitrary buffer should give the receiver enough time to not
// lose a message. Websocket send could take long.
const messageBuffer = 100

// subscriber holds the channel for a registered id and the topics it wants.
// An empty topic set receives every topic.
type subscriber struct {
	ch     chan string
	topics map[string]struct{}
}

func (s subscriber) wants(topic string) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, exists := s.topics[topic]
	return exists
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]subscriber
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]subscriber),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, sub := range evt.m {
		delete(evt.m, id)
		close(sub.ch)
	}
}

// Acquire takes a unique id and the topics of interest and returns a channel
// that can be used to receive events. Acquiring an existing id returns the
// channel already registered for it.
func (evt *Events) Acquire(id string, topics ...string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.m[id]
	if exists {
		return sub.ch
	}

	sub = subscriber{
		ch:     make(chan string, messageBuffer),
		topics: make(map[string]struct{}, len(topics)),
	}
	for _, topic := range topics {
		sub.topics[topic] = struct{}{}
	}

	evt.m[id] = sub
	return sub.ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(sub.ch)
	return nil
}

// Count returns the number of registered subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}

// Send signals a message to every channel registered for the topic. Send
// will not block waiting for a receiver on any given channel.
func (evt *Events) Send(topic string, s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, sub := range evt.m {
		if !sub.wants(topic) {
			continue
		}

		select {
		case sub.ch <- s:
		default:
		}
	}
}
