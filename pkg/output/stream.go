// Copyright 2025 tls-monitoring Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "sync"

// Subscriber consumes output events from a stream. Formatters implement
// this to render events into a concrete representation.
type Subscriber interface {
	// Name returns the subscriber identifier.
	Name() string

	// ShouldHandle decides if this subscriber cares about the event.
	ShouldHandle(event Event) bool

	// Handle processes one event.
	Handle(event Event)
}

// EventStream fans out events to its subscribers in subscription order.
// Safe for concurrent Emit calls; subscribers handle events synchronously.
type EventStream struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewEventStream creates an empty stream.
func NewEventStream() *EventStream {
	return &EventStream{}
}

// Subscribe registers a subscriber for all future events.
func (s *EventStream) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// SubscriberCount returns the number of registered subscribers.
func (s *EventStream) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Emit delivers the event to every subscriber that wants it.
func (s *EventStream) Emit(event Event) {
	s.mu.RLock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.ShouldHandle(event) {
			sub.Handle(event)
		}
	}
}
