package effect

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stagelight/dmxcore/internal/events"
	"github.com/stagelight/dmxcore/internal/universe"
)

// defaultFadeTick is used when the configured cadence is not positive.
const defaultFadeTick = 50 * time.Millisecond

// defaultChaseInterval is used when a chase omits its step interval.
const defaultChaseInterval = 250 * time.Millisecond

// ChannelWriter is the slice of the universe registry effects write
// through. Satisfied by *universe.Registry.
type ChannelWriter interface {
	SetChannels(universeID string, values map[int]int) (int, error)
	Snapshot(universeID string) ([universe.NumChannels]byte, error)
	IsConnected(universeID string) bool
}

// Logger defines the logging interface used by the Engine.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}

// runner pairs an effect with the handle controlling its goroutine.
type runner struct {
	effect *Effect
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine owns every effect for its lifetime.
//
// Effects in terminal states remain queryable through Status and List
// until the engine closes; ListActive and CountActive see only RUNNING
// effects. All public methods are thread-safe.
type Engine struct {
	mu      sync.RWMutex
	runners map[string]*runner
	closed  bool

	writer        ChannelWriter
	bus           *events.Bus
	logger        Logger
	fadeTick      time.Duration
	chaseInterval time.Duration
}

// New creates an engine writing through the given universe surface.
//
// fadeTick sets the fade interpolation cadence; pass 0 for the 50ms
// default. The bus receives lifecycle events; pass nil to disable.
func New(writer ChannelWriter, bus *events.Bus, fadeTick time.Duration) *Engine {
	if fadeTick <= 0 {
		fadeTick = defaultFadeTick
	}
	return &Engine{
		runners:       make(map[string]*runner),
		writer:        writer,
		bus:           bus,
		logger:        noopLogger{},
		fadeTick:      fadeTick,
		chaseInterval: defaultChaseInterval,
	}
}

// SetChaseInterval sets the step interval applied to chases that omit
// one. Values at or below zero are ignored.
func (e *Engine) SetChaseInterval(d time.Duration) {
	if d > 0 {
		e.chaseInterval = d
	}
}

// SetLogger sets the logger for the engine.
func (e *Engine) SetLogger(logger Logger) {
	e.logger = logger
}

// publish emits an event when a bus is configured.
func (e *Engine) publish(eventType, universeID, effectID string, kind Kind) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.Event{
		Type:       eventType,
		UniverseID: universeID,
		Payload:    map[string]any{"effect_id": effectID, "kind": string(kind)},
	})
}

// requireConnected rejects starts against unknown or disconnected universes.
func (e *Engine) requireConnected(universeID string) error {
	if !e.writer.IsConnected(universeID) {
		return fmt.Errorf("%w: %q", universe.ErrUniverseNotFound, universeID)
	}
	return nil
}

// =============================================================================
// Start operations
// =============================================================================

// StartFade interpolates channels from their current levels to the
// target over the given duration, then completes.
//
// Every Start call creates a new effect instance; starts are the one
// control operation that is not idempotent to retry.
func (e *Engine) StartFade(universeID string, p FadeParams) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	if err := e.requireConnected(universeID); err != nil {
		return "", err
	}

	snap, err := e.writer.Snapshot(universeID)
	if err != nil {
		return "", err
	}
	startValues := make(map[int]int, len(p.Channels))
	for _, ch := range p.Channels {
		startValues[ch] = int(snap[ch-1])
	}

	eff := &Effect{
		ID:         uuid.New().String(),
		Kind:       KindFade,
		UniverseID: universeID,
		State:      StateRunning,
		StartedAt:  time.Now().UTC(),
		Channels:   append([]int(nil), p.Channels...),
		Target:     p.Target,
		Duration:   p.Duration,
	}

	started := time.Now()
	tick := func() (bool, error) {
		progress := float64(time.Since(started)) / float64(p.Duration)
		if progress > 1 {
			progress = 1
		}
		batch := make(map[int]int, len(p.Channels))
		for _, ch := range p.Channels {
			from := startValues[ch]
			batch[ch] = int(math.Round(float64(from) + float64(p.Target-from)*progress))
		}
		if _, err := e.writer.SetChannels(universeID, batch); err != nil {
			return false, err
		}
		return progress >= 1, nil
	}

	return e.launch(eff, e.fadeTick, tick)
}

// StartChase steps through channel groups, lighting one group at full
// per step while blacking out the rest. Runs until stopped.
func (e *Engine) StartChase(universeID string, p ChaseParams) (string, error) {
	if p.StepInterval == 0 {
		p.StepInterval = e.chaseInterval
	}
	if err := p.validate(); err != nil {
		return "", err
	}
	if err := e.requireConnected(universeID); err != nil {
		return "", err
	}

	groups := make([][]int, len(p.Groups))
	total := 0
	for i, g := range p.Groups {
		groups[i] = append([]int(nil), g...)
		total += len(g)
	}

	eff := &Effect{
		ID:           uuid.New().String(),
		Kind:         KindChase,
		UniverseID:   universeID,
		State:        StateRunning,
		StartedAt:    time.Now().UTC(),
		Groups:       groups,
		StepInterval: p.StepInterval,
	}

	step := 0
	tick := func() (bool, error) {
		batch := make(map[int]int, total)
		for _, g := range groups {
			for _, ch := range g {
				batch[ch] = 0
			}
		}
		for _, ch := range groups[step%len(groups)] {
			batch[ch] = universe.MaxValue
		}
		step++
		_, err := e.writer.SetChannels(universeID, batch)
		return false, err
	}

	return e.launch(eff, p.StepInterval, tick)
}

// StartStrobe toggles channels between 0 and full at the given
// frequency. A positive duration completes naturally; zero runs until
// stopped.
func (e *Engine) StartStrobe(universeID string, p StrobeParams) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	if err := e.requireConnected(universeID); err != nil {
		return "", err
	}

	eff := &Effect{
		ID:          uuid.New().String(),
		Kind:        KindStrobe,
		UniverseID:  universeID,
		State:       StateRunning,
		StartedAt:   time.Now().UTC(),
		Channels:    append([]int(nil), p.Channels...),
		FrequencyHz: p.FrequencyHz,
		Duration:    p.Duration,
	}

	// Half-period toggling: a 10Hz strobe flips every 50ms.
	halfPeriod := time.Duration(float64(time.Second) / (2 * p.FrequencyHz))

	on := false
	started := time.Now()
	tick := func() (bool, error) {
		if p.Duration > 0 && time.Since(started) > p.Duration {
			return true, nil
		}
		on = !on
		level := 0
		if on {
			level = universe.MaxValue
		}
		batch := make(map[int]int, len(p.Channels))
		for _, ch := range p.Channels {
			batch[ch] = level
		}
		_, err := e.writer.SetChannels(universeID, batch)
		return false, err
	}

	return e.launch(eff, halfPeriod, tick)
}

// launch registers the effect and starts its goroutine.
func (e *Engine) launch(eff *Effect, interval time.Duration, tick func() (bool, error)) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		return "", ErrEngineClosed
	}
	r := &runner{effect: eff, cancel: cancel, done: make(chan struct{})}
	e.runners[eff.ID] = r
	e.mu.Unlock()

	e.logger.Info("effect started",
		"effect_id", eff.ID,
		"kind", string(eff.Kind),
		"universe_id", eff.UniverseID,
	)
	e.publish(events.TypeEffectStarted, eff.UniverseID, eff.ID, eff.Kind)

	go e.run(ctx, r, interval, tick)

	return eff.ID, nil
}

// run drives one effect until it completes, fails, or is cancelled.
func (e *Engine) run(ctx context.Context, r *runner, interval time.Duration, tick func() (bool, error)) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready; never write after cancellation.
			if ctx.Err() != nil {
				return
			}
			completed, err := tick()
			if err != nil {
				e.logger.Warn("effect tick failed",
					"effect_id", r.effect.ID,
					"error", err,
				)
				e.finish(r.effect.ID, StateStopped)
				return
			}
			if completed {
				e.finish(r.effect.ID, StateCompleted)
				return
			}
		}
	}
}

// finish moves an effect into a terminal state and announces it.
// Only the first transition wins; later calls are no-ops.
func (e *Engine) finish(effectID string, state State) {
	e.mu.Lock()
	r, ok := e.runners[effectID]
	if !ok || r.effect.State != StateRunning {
		e.mu.Unlock()
		return
	}
	r.effect.State = state
	r.effect.EndedAt = time.Now().UTC()
	universeID := r.effect.UniverseID
	kind := r.effect.Kind
	e.mu.Unlock()

	eventType := events.TypeEffectStopped
	if state == StateCompleted {
		eventType = events.TypeEffectCompleted
	}

	e.logger.Debug("effect finished",
		"effect_id", effectID,
		"state", string(state),
	)
	e.publish(eventType, universeID, effectID, kind)
}

// =============================================================================
// Stop operations
// =============================================================================

// Stop cancels a running effect and waits for its goroutine to exit.
// When Stop returns, no further write from the effect can occur.
//
// Stopping an unknown or already-terminal effect is a no-op.
func (e *Engine) Stop(effectID string) error {
	e.mu.RLock()
	r, ok := e.runners[effectID]
	running := ok && r.effect.State == StateRunning
	e.mu.RUnlock()

	if !running {
		return nil
	}

	r.cancel()
	<-r.done
	e.finish(effectID, StateStopped)
	return nil
}

// StopAll stops every running effect, optionally filtered to one
// universe (empty string stops everything). Returns the number of
// effects that were running when the call began.
//
// Like Stop, StopAll waits: when it returns, none of the stopped
// effects can write again.
func (e *Engine) StopAll(universeID string) int {
	e.mu.RLock()
	var targets []string
	for id, r := range e.runners {
		if r.effect.State != StateRunning {
			continue
		}
		if universeID != "" && r.effect.UniverseID != universeID {
			continue
		}
		targets = append(targets, id)
	}
	e.mu.RUnlock()

	for _, id := range targets {
		_ = e.Stop(id)
	}
	return len(targets)
}

// Close stops every running effect and rejects further starts.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	stopped := e.StopAll("")
	e.logger.Info("effect engine closed", "effects_stopped", stopped)
	return nil
}

// =============================================================================
// Queries
// =============================================================================

// Status returns a copy of one effect, terminal or running.
func (e *Engine) Status(effectID string) (Effect, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.runners[effectID]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %q", ErrEffectNotFound, effectID)
	}
	return r.effect.deepCopy(), nil
}

// ListActive returns running effects, optionally filtered to one
// universe (empty string lists all). Sorted by start time then ID.
func (e *Engine) ListActive(universeID string) []Effect {
	e.mu.RLock()
	out := make([]Effect, 0, len(e.runners))
	for _, r := range e.runners {
		if r.effect.State != StateRunning {
			continue
		}
		if universeID != "" && r.effect.UniverseID != universeID {
			continue
		}
		out = append(out, r.effect.deepCopy())
	}
	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CountActive returns the number of running effects on a universe.
func (e *Engine) CountActive(universeID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, r := range e.runners {
		if r.effect.State == StateRunning && r.effect.UniverseID == universeID {
			n++
		}
	}
	return n
}
