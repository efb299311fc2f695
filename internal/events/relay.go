package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Publisher is the broker surface the relay needs.
// Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Logger is the logging surface the relay needs.
// Compatible with logging.Logger.
type Logger interface {
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}

// Relay forwards bus events to an MQTT broker.
//
// Each event is marshalled to JSON and published non-retained to
// dmxcore/event/{type}. Publish failures are logged and skipped;
// the relay never retries because events are point-in-time facts
// that go stale immediately.
type Relay struct {
	bus    *Bus
	pub    Publisher
	qos    byte
	logger Logger

	cancelSub func()
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRelay wires a bus to a broker publisher.
func NewRelay(bus *Bus, pub Publisher, qos byte) *Relay {
	return &Relay{
		bus:    bus,
		pub:    pub,
		qos:    qos,
		logger: noopLogger{},
		done:   make(chan struct{}),
	}
}

// SetLogger sets the logger for the relay.
func (r *Relay) SetLogger(logger Logger) {
	r.logger = logger
}

// Start subscribes to the bus and begins forwarding events.
// It returns immediately; forwarding runs in a background goroutine
// until Stop is called or ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		ch, cancel := r.bus.Subscribe(DefaultBuffer * 4)
		r.cancelSub = cancel

		go func() {
			defer close(r.done)
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-ch:
					if !ok {
						return
					}
					r.forward(ev)
				}
			}
		}()
	})
}

// Stop unsubscribes from the bus and waits for the forwarding
// goroutine to exit.
func (r *Relay) Stop() {
	r.stopOnce.Do(func() {
		if r.cancelSub != nil {
			r.cancelSub()
			<-r.done
		}
	})
}

// forward publishes one event to the broker.
func (r *Relay) forward(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.logger.Warn("event marshal failed", "type", ev.Type, "error", err)
		return
	}

	topic := fmt.Sprintf("dmxcore/event/%s", ev.Type)
	if err := r.pub.Publish(topic, payload, r.qos, false); err != nil {
		r.logger.Warn("event publish failed", "topic", topic, "error", err)
		return
	}

	r.logger.Debug("event relayed", "topic", topic)
}
