package testutil

import (
	"context"
	"encoding/json"
	"sync"
)

// PublishedEvent represents an event captured by the mock publisher
type PublishedEvent struct {
	RoutingKey string
	EventData  interface{}
	RawJSON    []byte
}

// MockPublisher is an in-memory event publisher for tests. It stores all
// published events and never talks to RabbitMQ.
type MockPublisher struct {
	mu     sync.RWMutex
	events []PublishedEvent
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{events: make([]PublishedEvent, 0)}
}

// Publish stores an event in memory
func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Marshal to JSON to catch unserializable payloads, as real publishing would
	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return err
	}

	m.events = append(m.events, PublishedEvent{
		RoutingKey: routingKey,
		EventData:  eventData,
		RawJSON:    jsonData,
	})
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockPublisher) Close() error {
	return nil
}

// Events returns a copy of all captured events
func (m *MockPublisher) Events() []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventsByKey returns captured events with the given routing key
func (m *MockPublisher) EventsByKey(routingKey string) []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []PublishedEvent
	for _, e := range m.events {
		if e.RoutingKey == routingKey {
			out = append(out, e)
		}
	}
	return out
}
