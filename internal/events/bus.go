package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event types published on the bus.
const (
	TypeChannelChanged       = "channel.changed"
	TypeUniverseConnected    = "universe.connected"
	TypeUniverseDisconnected = "universe.disconnected"
	TypeEffectStarted        = "effect.started"
	TypeEffectCompleted      = "effect.completed"
	TypeEffectStopped        = "effect.stopped"
	TypeSceneLoaded          = "scene.loaded"
)

// Event is a single lifecycle notification.
type Event struct {
	// Type is one of the Type* constants.
	Type string `json:"type"`

	// UniverseID identifies the affected universe, when applicable.
	UniverseID string `json:"universe_id,omitempty"`

	// At is when the event was published.
	At time.Time `json:"at"`

	// Payload carries type-specific detail (channel numbers, effect IDs, etc).
	Payload map[string]any `json:"payload,omitempty"`
}

// DefaultBuffer is the subscription buffer used when callers pass 0.
const DefaultBuffer = 64

// Bus fans events out to subscribers without blocking producers.
//
// All methods are safe for concurrent use.
type Bus struct {
	mu      sync.RWMutex
	subs    map[int]chan Event
	nextID  int
	closed  bool
	dropped atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a new subscriber with the given channel buffer.
// A buffer of 0 uses DefaultBuffer.
//
// The returned cancel function unregisters the subscriber and closes
// the channel. It is safe to call more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	ch := make(chan Event, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
			b.mu.Unlock()
		})
	}

	return ch, cancel
}

// Publish delivers an event to every subscriber whose buffer has room.
// It never blocks; events to full subscribers are dropped and counted.
//
// A zero At timestamp is filled in with the current time.
func (b *Bus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns the total number of events discarded because a
// subscriber's buffer was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close shuts the bus down, closing all subscriber channels.
// Publish and Subscribe become no-ops after Close.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
