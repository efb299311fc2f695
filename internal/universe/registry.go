package universe

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stagelight/dmxcore/internal/adapter"
	"github.com/stagelight/dmxcore/internal/events"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// EffectService is the slice of the effect engine the registry needs.
// Disconnecting a universe must halt its effects before state freezes.
type EffectService interface {
	// StopAll stops every effect on the universe and returns how many were stopped.
	StopAll(universeID string) int

	// CountActive returns the number of running effects on the universe.
	CountActive(universeID string) int
}

// FixtureCounter reports how many fixtures are patched to a universe.
type FixtureCounter interface {
	CountByUniverse(universeID string) int
}

// record is one universe's registry entry.
type record struct {
	store       *ChannelStore
	adapterID   string
	status      Status
	connectedAt time.Time
}

// Registry tracks every universe the engine knows about.
//
// All public methods are thread-safe. The registry lock guards the
// universe map; channel writes take the per-universe ChannelStore lock
// so traffic on one universe does not serialize against another.
type Registry struct {
	mu        sync.RWMutex
	universes map[string]*record

	adapters adapter.Provider
	bus      *events.Bus
	effects  EffectService
	fixtures FixtureCounter
	logger   Logger
}

// NewRegistry creates an empty registry.
//
// The adapter provider is consulted on every Connect. The bus receives
// lifecycle and channel-change events; pass nil to disable events.
func NewRegistry(adapters adapter.Provider, bus *events.Bus) *Registry {
	return &Registry{
		universes: make(map[string]*record),
		adapters:  adapters,
		bus:       bus,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// SetEffects wires in the effect engine.
// Must be called before Disconnect can cancel running effects.
func (r *Registry) SetEffects(effects EffectService) {
	r.effects = effects
}

// SetFixtures wires in the fixture registry for Status counts.
func (r *Registry) SetFixtures(fixtures FixtureCounter) {
	r.fixtures = fixtures
}

// publish emits an event when a bus is configured.
func (r *Registry) publish(ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}

// Connect binds a universe to an adapter and marks it writable.
//
// Connecting an ID that already exists rebinds it, keeping its channel
// state. This covers the common show-floor case of moving a universe to
// a spare adapter after a dongle failure.
//
// Returns ErrAdapterNotFound for unknown adapters and
// ErrAdapterUnavailable for adapters that cannot currently be bound.
func (r *Registry) Connect(universeID, adapterID string) error {
	if universeID == "" {
		return ErrInvalidID
	}

	desc, err := r.adapters.Get(adapterID)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrAdapterNotFound, adapterID)
		}
		return fmt.Errorf("looking up adapter %q: %w", adapterID, err)
	}
	if !desc.Available {
		return fmt.Errorf("%w: %q", ErrAdapterUnavailable, adapterID)
	}

	r.mu.Lock()
	rec, exists := r.universes[universeID]
	if !exists {
		rec = &record{store: NewChannelStore()}
		r.universes[universeID] = rec
	}
	rec.adapterID = adapterID
	rec.status = StatusConnected
	rec.connectedAt = time.Now().UTC()
	r.mu.Unlock()

	r.logger.Info("universe connected",
		"universe_id", universeID,
		"adapter_id", adapterID,
		"rebind", exists,
	)

	r.publish(events.Event{
		Type:       events.TypeUniverseConnected,
		UniverseID: universeID,
		Payload:    map[string]any{"adapter_id": adapterID},
	})

	return nil
}

// Disconnect stops all effects on a universe, then marks it disconnected.
//
// Channel state is retained for inspection; writes and frame encoding
// are refused until the universe reconnects. Effects are stopped before
// the status flips so no effect tick lands after the final snapshot.
func (r *Registry) Disconnect(universeID string) error {
	r.mu.RLock()
	rec, ok := r.universes[universeID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUniverseNotFound, universeID)
	}

	stopped := 0
	if r.effects != nil {
		stopped = r.effects.StopAll(universeID)
	}

	r.mu.Lock()
	rec.status = StatusDisconnected
	r.mu.Unlock()

	r.logger.Info("universe disconnected",
		"universe_id", universeID,
		"effects_stopped", stopped,
	)

	r.publish(events.Event{
		Type:       events.TypeUniverseDisconnected,
		UniverseID: universeID,
		Payload:    map[string]any{"effects_stopped": stopped},
	})

	return nil
}

// connectedStore returns the channel store for a connected universe.
// Disconnected and unknown universes both report ErrUniverseNotFound:
// from a writer's point of view a universe that cannot accept output
// does not exist.
func (r *Registry) connectedStore(universeID string) (*ChannelStore, error) {
	r.mu.RLock()
	rec, ok := r.universes[universeID]
	r.mu.RUnlock()
	if !ok || rec.status != StatusConnected {
		return nil, fmt.Errorf("%w: %q", ErrUniverseNotFound, universeID)
	}
	return rec.store, nil
}

// anyStore returns the channel store for any known universe,
// connected or not.
func (r *Registry) anyStore(universeID string) (*ChannelStore, error) {
	r.mu.RLock()
	rec, ok := r.universes[universeID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUniverseNotFound, universeID)
	}
	return rec.store, nil
}

// SetChannel writes one channel level on a connected universe.
func (r *Registry) SetChannel(universeID string, channel, value int) error {
	store, err := r.connectedStore(universeID)
	if err != nil {
		return err
	}
	if err := store.Set(channel, value); err != nil {
		return err
	}

	r.publish(events.Event{
		Type:       events.TypeChannelChanged,
		UniverseID: universeID,
		Payload:    map[string]any{"channels": map[int]int{channel: value}},
	})

	return nil
}

// SetChannels writes a batch of channel levels on a connected universe.
//
// Invalid entries are skipped rather than aborting the batch; the
// return value is the number of entries applied. One aggregated
// channel-changed event covers the whole batch.
func (r *Registry) SetChannels(universeID string, values map[int]int) (int, error) {
	store, err := r.connectedStore(universeID)
	if err != nil {
		return 0, err
	}
	applied := store.SetMany(values)

	if applied > 0 {
		r.publish(events.Event{
			Type:       events.TypeChannelChanged,
			UniverseID: universeID,
			Payload:    map[string]any{"channels": values, "applied": applied},
		})
	}

	return applied, nil
}

// GetChannel reads one channel level. Works on disconnected universes.
func (r *Registry) GetChannel(universeID string, channel int) (int, error) {
	store, err := r.anyStore(universeID)
	if err != nil {
		return 0, err
	}
	return store.Get(channel)
}

// Snapshot returns a copy of all 512 channel levels.
// Works on disconnected universes; state is retained across disconnect.
func (r *Registry) Snapshot(universeID string) ([NumChannels]byte, error) {
	store, err := r.anyStore(universeID)
	if err != nil {
		return [NumChannels]byte{}, err
	}
	return store.Snapshot(), nil
}

// Status returns a point-in-time view of one universe.
// Works on disconnected universes.
func (r *Registry) Status(universeID string) (StatusInfo, error) {
	r.mu.RLock()
	rec, ok := r.universes[universeID]
	r.mu.RUnlock()
	if !ok {
		return StatusInfo{}, fmt.Errorf("%w: %q", ErrUniverseNotFound, universeID)
	}

	info := StatusInfo{
		ID:          universeID,
		AdapterID:   rec.adapterID,
		Status:      rec.status,
		ConnectedAt: rec.connectedAt,
		LastUpdate:  rec.store.LastUpdate(),
	}
	if r.effects != nil {
		info.ActiveEffects = r.effects.CountActive(universeID)
	}
	if r.fixtures != nil {
		info.FixtureCount = r.fixtures.CountByUniverse(universeID)
	}
	return info, nil
}

// ListAll returns status for every known universe, sorted by ID.
func (r *Registry) ListAll() []StatusInfo {
	r.mu.RLock()
	ids := make([]string, 0, len(r.universes))
	for id := range r.universes {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)

	out := make([]StatusInfo, 0, len(ids))
	for _, id := range ids {
		info, err := r.Status(id)
		if err != nil {
			// Removed between snapshot and status read; skip.
			continue
		}
		out = append(out, info)
	}
	return out
}

// IsConnected reports whether a universe exists and is connected.
func (r *Registry) IsConnected(universeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.universes[universeID]
	return ok && rec.status == StatusConnected
}
