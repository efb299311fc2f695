package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestBus_PublishDelivers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(Event{Type: TypeUniverseConnected, UniverseID: "main"})

	select {
	case ev := <-ch:
		if ev.Type != TypeUniverseConnected {
			t.Errorf("Type = %q, want %q", ev.Type, TypeUniverseConnected)
		}
		if ev.UniverseID != "main" {
			t.Errorf("UniverseID = %q, want %q", ev.UniverseID, "main")
		}
		if ev.At.IsZero() {
			t.Error("At not stamped")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_SlowSubscriberDrops(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	_, cancel := bus.Subscribe(1)
	defer cancel()

	// First fills the buffer, second must be dropped without blocking.
	bus.Publish(Event{Type: TypeChannelChanged})
	bus.Publish(Event{Type: TypeChannelChanged})

	if got := bus.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
}

func TestBus_CancelUnsubscribes(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1)
	cancel()
	cancel() // safe to repeat

	if _, ok := <-ch; ok {
		t.Error("channel not closed after cancel")
	}
	if n := bus.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", n)
	}
}

func TestBus_CloseIdempotent(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe(1)

	bus.Close()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("channel not closed after Close")
	}

	// Publish and Subscribe become no-ops.
	bus.Publish(Event{Type: TypeSceneLoaded})
	ch2, cancel := bus.Subscribe(1)
	defer cancel()
	if _, ok := <-ch2; ok {
		t.Error("Subscribe after Close returned open channel")
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1024)
	defer cancel()

	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 50

	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				bus.Publish(Event{Type: TypeEffectStarted})
			}
		}()
	}
	wg.Wait()

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received != producers*perProducer {
				t.Errorf("received %d events, want %d", received, producers*perProducer)
			}
			return
		}
	}
}

// =============================================================================
// Relay Tests
// =============================================================================

type capturePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (p *capturePublisher) Publish(topic string, payload []byte, _ byte, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) snapshot() ([]string, [][]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...), append([][]byte(nil), p.payloads...)
}

func TestRelay_ForwardsToBroker(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	pub := &capturePublisher{}
	relay := NewRelay(bus, pub, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relay.Start(ctx)

	bus.Publish(Event{Type: TypeEffectCompleted, UniverseID: "main", Payload: map[string]any{"effect_id": "fx-1"}})

	deadline := time.After(2 * time.Second)
	for {
		topics, payloads := pub.snapshot()
		if len(topics) > 0 {
			if topics[0] != "dmxcore/event/effect.completed" {
				t.Errorf("topic = %q, want %q", topics[0], "dmxcore/event/effect.completed")
			}
			var ev Event
			if err := json.Unmarshal(payloads[0], &ev); err != nil {
				t.Fatalf("payload not JSON: %v", err)
			}
			if ev.UniverseID != "main" {
				t.Errorf("UniverseID = %q, want %q", ev.UniverseID, "main")
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for relay publish")
		case <-time.After(10 * time.Millisecond):
		}
	}

	relay.Stop()
}
