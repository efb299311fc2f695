package fixture

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stagelight/dmxcore/internal/universe"
)

// Fixture is a named view over a contiguous channel range.
//
// StartChannel and ChannelCount are fixed at definition; only the
// cached last-applied values change afterwards.
type Fixture struct {
	ID           string            `json:"id"`
	UniverseID   string            `json:"universe_id"`
	Name         string            `json:"name"`
	StartChannel int               `json:"start_channel"`
	ChannelCount int               `json:"channel_count"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`

	// LastValues is the cached copy of the most recent Control call,
	// length ChannelCount. Nil until the fixture is first controlled.
	LastValues []int `json:"last_values,omitempty"`
}

// DeepCopy returns an independent copy of the fixture.
func (f *Fixture) DeepCopy() *Fixture {
	clone := *f
	if f.Metadata != nil {
		clone.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			clone.Metadata[k] = v
		}
	}
	if f.LastValues != nil {
		clone.LastValues = append([]int(nil), f.LastValues...)
	}
	return &clone
}

// ChannelWriter is the slice of the universe registry fixtures need.
// Satisfied by *universe.Registry.
type ChannelWriter interface {
	SetChannels(universeID string, values map[int]int) (int, error)
	IsConnected(universeID string) bool
}

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// Registry holds fixture definitions and routes control writes to the
// owning universe. All public methods are thread-safe.
type Registry struct {
	mu       sync.RWMutex
	fixtures map[string]*Fixture

	universes ChannelWriter
	logger    Logger
}

// NewRegistry creates an empty fixture registry writing through the
// given universe surface.
func NewRegistry(universes ChannelWriter) *Registry {
	return &Registry{
		fixtures:  make(map[string]*Fixture),
		universes: universes,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Define creates a fixture over startChannel..startChannel+channelCount-1.
//
// The owning universe must be connected. Overlap with existing fixtures
// is allowed; the last writer wins at the channel store.
func (r *Registry) Define(universeID, name string, startChannel, channelCount int, metadata map[string]string) (*Fixture, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if startChannel < 1 || channelCount < 1 || startChannel+channelCount-1 > universe.NumChannels {
		return nil, fmt.Errorf("%w: start %d count %d", ErrInvalidRange, startChannel, channelCount)
	}
	if !r.universes.IsConnected(universeID) {
		return nil, fmt.Errorf("%w: %q", universe.ErrUniverseNotFound, universeID)
	}

	f := &Fixture{
		ID:           uuid.New().String(),
		UniverseID:   universeID,
		Name:         name,
		StartChannel: startChannel,
		ChannelCount: channelCount,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.fixtures[f.ID] = f
	r.mu.Unlock()

	r.logger.Info("fixture defined",
		"fixture_id", f.ID,
		"universe_id", universeID,
		"name", name,
		"start_channel", startChannel,
		"channel_count", channelCount,
	)

	return f.DeepCopy(), nil
}

// Control writes ordered values onto the fixture's channel range:
// values[i] lands on channel StartChannel+i.
//
// Passing fewer values than the fixture has channels writes a prefix;
// passing more returns ErrTooManyValues. The return value is the
// number of channels applied by the underlying batch write.
func (r *Registry) Control(fixtureID string, values []int) (int, error) {
	r.mu.RLock()
	f, ok := r.fixtures[fixtureID]
	r.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFixtureNotFound, fixtureID)
	}
	if len(values) > f.ChannelCount {
		return 0, fmt.Errorf("%w: got %d, fixture has %d channels", ErrTooManyValues, len(values), f.ChannelCount)
	}

	batch := make(map[int]int, len(values))
	for i, v := range values {
		batch[f.StartChannel+i] = v
	}

	applied, err := r.universes.SetChannels(f.UniverseID, batch)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	f.LastValues = append([]int(nil), values...)
	r.mu.Unlock()

	r.logger.Debug("fixture controlled",
		"fixture_id", fixtureID,
		"values", len(values),
		"applied", applied,
	)

	return applied, nil
}

// Get returns a copy of the fixture with the given ID.
func (r *Registry) Get(fixtureID string) (*Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fixtures[fixtureID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFixtureNotFound, fixtureID)
	}
	return f.DeepCopy(), nil
}

// List returns fixtures for one universe, or every fixture when
// universeID is empty. Results are sorted by name then ID.
func (r *Registry) List(universeID string) []Fixture {
	r.mu.RLock()
	out := make([]Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if universeID != "" && f.UniverseID != universeID {
			continue
		}
		out = append(out, *f.DeepCopy())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete removes a fixture definition.
// The underlying channels keep their last written levels.
func (r *Registry) Delete(fixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fixtures[fixtureID]; !ok {
		return fmt.Errorf("%w: %q", ErrFixtureNotFound, fixtureID)
	}
	delete(r.fixtures, fixtureID)
	return nil
}

// CountByUniverse returns how many fixtures are patched to a universe.
func (r *Registry) CountByUniverse(universeID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, f := range r.fixtures {
		if f.UniverseID == universeID {
			n++
		}
	}
	return n
}
