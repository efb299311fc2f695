package scene

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stagelight/dmxcore/internal/events"
	"github.com/stagelight/dmxcore/internal/universe"
)

// ChannelService is the slice of the universe registry scenes need.
// Satisfied by *universe.Registry.
type ChannelService interface {
	Snapshot(universeID string) ([universe.NumChannels]byte, error)
	SetChannels(universeID string, values map[int]int) (int, error)
	IsConnected(universeID string) bool
}

// Logger defines the logging interface used by the Store.
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

// Store captures, persists, and applies scenes.
// All public methods are thread-safe given a thread-safe Repository.
type Store struct {
	repo      Repository
	universes ChannelService
	bus       *events.Bus
	logger    Logger
}

// NewStore creates a scene store over the given repository and
// universe surface. The bus receives scene.loaded events; pass nil to
// disable.
func NewStore(repo Repository, universes ChannelService, bus *events.Bus) *Store {
	return &Store{
		repo:      repo,
		universes: universes,
		bus:       bus,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Capture snapshots the listed universes into a new scene.
//
// Every channel of each universe is recorded, zeros included, so a
// later Load restores the complete look rather than overlaying only
// the lit channels. Unknown universes fail the capture.
func (s *Store) Capture(ctx context.Context, name string, universeIDs []string) (*Scene, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(universeIDs) == 0 {
		return nil, ErrEmptyCapture
	}

	universes := make(map[string]map[int]int, len(universeIDs))
	for _, id := range universeIDs {
		snap, err := s.universes.Snapshot(id)
		if err != nil {
			return nil, fmt.Errorf("capturing universe %q: %w", id, err)
		}
		channels := make(map[int]int, universe.NumChannels)
		for i, v := range snap {
			channels[i+1] = int(v)
		}
		universes[id] = channels
	}

	sc := &Scene{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Universes: universes,
	}
	if err := s.repo.Save(ctx, sc); err != nil {
		return nil, fmt.Errorf("saving scene: %w", err)
	}

	s.logger.Info("scene captured",
		"scene_id", sc.ID,
		"name", name,
		"universes", len(universeIDs),
	)

	return sc.DeepCopy(), nil
}

// Create stores a scene defined ahead of time rather than captured
// from live state.
func (s *Store) Create(ctx context.Context, name string, universes map[string]map[int]int) (*Scene, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	sc := &Scene{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Universes: universes,
	}
	sc = sc.DeepCopy() // detach from caller's maps
	if err := s.repo.Save(ctx, sc); err != nil {
		return nil, fmt.Errorf("saving scene: %w", err)
	}

	s.logger.Info("scene created", "scene_id", sc.ID, "name", name)
	return sc.DeepCopy(), nil
}

// Load applies a scene as instantaneous batch writes.
//
// A universe in the scene that is unknown or disconnected is skipped
// rather than failing the whole load; a venue reloading last night's
// looks with one dongle unplugged still gets the rest of the rig.
// Returns the number of channel entries applied.
func (s *Store) Load(ctx context.Context, sceneID string) (int, error) {
	sc, err := s.repo.GetByID(ctx, sceneID)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(sc.Universes))
	for id := range sc.Universes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	applied := 0
	skipped := 0
	for _, id := range ids {
		if !s.universes.IsConnected(id) {
			skipped++
			s.logger.Warn("scene universe unavailable, skipping",
				"scene_id", sceneID,
				"universe_id", id,
			)
			continue
		}
		n, err := s.universes.SetChannels(id, sc.Universes[id])
		if err != nil {
			// Disconnected between the check and the write; skip.
			skipped++
			continue
		}
		applied += n
	}

	s.logger.Info("scene loaded",
		"scene_id", sceneID,
		"applied", applied,
		"universes_skipped", skipped,
	)

	if s.bus != nil {
		s.bus.Publish(events.Event{
			Type: events.TypeSceneLoaded,
			Payload: map[string]any{
				"scene_id":          sceneID,
				"applied":           applied,
				"universes_skipped": skipped,
			},
		})
	}

	return applied, nil
}

// Get returns one scene by ID.
func (s *Store) Get(ctx context.Context, sceneID string) (*Scene, error) {
	return s.repo.GetByID(ctx, sceneID)
}

// List returns every stored scene, sorted by name.
func (s *Store) List(ctx context.Context) ([]Scene, error) {
	return s.repo.List(ctx)
}

// Delete removes a scene. Returns ErrSceneNotFound if absent.
func (s *Store) Delete(ctx context.Context, sceneID string) error {
	return s.repo.Delete(ctx, sceneID)
}
