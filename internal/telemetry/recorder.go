// Package telemetry records engine events to the time-series store.
//
// The Recorder subscribes to the in-process event bus and converts
// channel changes, effect lifecycle transitions, and scene loads into
// InfluxDB points. It is a read-only consumer: losing telemetry never
// affects the lighting engine.
package telemetry

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stagelight/dmxcore/internal/events"
)

// Logger is the minimal logging interface used by the recorder.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Sink receives telemetry points. Satisfied by *influxdb.Client.
type Sink interface {
	WriteChannelLevel(universeID string, channel, value int)
	WriteEffectLifecycle(effectID, universeID, kind, state string, elapsed time.Duration)
	WriteSceneLoad(sceneID string, applied int)
}

// subscribeBuffer sizes the bus subscription. Telemetry tolerates drops
// under burst load, so the buffer stays modest.
const subscribeBuffer = events.DefaultBuffer * 4

// reportInterval is how often the recorder logs its consumption stats.
const reportInterval = time.Minute

// Recorder consumes bus events and forwards them to the telemetry sink.
//
// Effect durations are derived locally: the recorder remembers when it
// saw each effect start and computes elapsed time at the terminal event.
type Recorder struct {
	bus    *events.Bus
	sink   Sink
	logger Logger

	mu       sync.Mutex
	started  map[string]time.Time // effect_id -> started seen at
	consumed uint64

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewRecorder creates a recorder wired to the given bus and sink.
func NewRecorder(bus *events.Bus, sink Sink) *Recorder {
	return &Recorder{
		bus:     bus,
		sink:    sink,
		logger:  noopLogger{},
		started: make(map[string]time.Time),
	}
}

// SetLogger sets the logger. Must be called before Start.
func (r *Recorder) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Start launches the consume and reporting loops.
// It returns immediately; use Stop to shut down.
func (r *Recorder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	ch, unsubscribe := r.bus.Subscribe(subscribeBuffer)

	g, gctx := errgroup.WithContext(ctx)
	r.group = g

	g.Go(func() error {
		defer unsubscribe()
		return r.consume(gctx, ch)
	})
	g.Go(func() error {
		return r.report(gctx)
	})
}

// Stop cancels the loops and waits for them to exit.
func (r *Recorder) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	//nolint:errcheck // Loops only return context errors
	r.group.Wait()
}

// consume drains bus events until the context is cancelled.
func (r *Recorder) consume(ctx context.Context, ch <-chan events.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			r.record(ev)
		}
	}
}

// report periodically logs consumption stats.
func (r *Recorder) report(ctx context.Context) error {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.mu.Lock()
			consumed := r.consumed
			tracked := len(r.started)
			r.mu.Unlock()
			r.logger.Debug("telemetry stats",
				"events_consumed", consumed,
				"effects_tracked", tracked,
				"bus_dropped", r.bus.Dropped(),
			)
		}
	}
}

// record converts one bus event into telemetry points.
func (r *Recorder) record(ev events.Event) {
	r.mu.Lock()
	r.consumed++
	r.mu.Unlock()

	switch ev.Type {
	case events.TypeChannelChanged:
		channels, ok := ev.Payload["channels"].(map[int]int)
		if !ok {
			return
		}
		for channel, value := range channels {
			r.sink.WriteChannelLevel(ev.UniverseID, channel, value)
		}

	case events.TypeEffectStarted:
		effectID, kind := effectFields(ev)
		if effectID == "" {
			return
		}
		r.mu.Lock()
		r.started[effectID] = ev.At
		r.mu.Unlock()
		r.sink.WriteEffectLifecycle(effectID, ev.UniverseID, kind, "running", 0)

	case events.TypeEffectCompleted, events.TypeEffectStopped:
		effectID, kind := effectFields(ev)
		if effectID == "" {
			return
		}
		state := "completed"
		if ev.Type == events.TypeEffectStopped {
			state = "stopped"
		}

		var elapsed time.Duration
		r.mu.Lock()
		if startedAt, ok := r.started[effectID]; ok {
			elapsed = ev.At.Sub(startedAt)
			delete(r.started, effectID)
		}
		r.mu.Unlock()

		r.sink.WriteEffectLifecycle(effectID, ev.UniverseID, kind, state, elapsed)

	case events.TypeSceneLoaded:
		sceneID, _ := ev.Payload["scene_id"].(string)
		if sceneID == "" {
			return
		}
		applied, _ := ev.Payload["applied"].(int)
		r.sink.WriteSceneLoad(sceneID, applied)
	}
}

// effectFields pulls the effect ID and kind out of an event payload.
func effectFields(ev events.Event) (effectID, kind string) {
	effectID, _ = ev.Payload["effect_id"].(string)
	kind, _ = ev.Payload["kind"].(string)
	return effectID, kind
}
