package adapter

import (
	"sort"
	"sync"

	"github.com/stagelight/dmxcore/internal/infrastructure/config"
)

// Descriptor identifies a DMX output interface.
type Descriptor struct {
	// ID uniquely identifies the adapter (e.g., "usb-0", "artnet-node-1").
	ID string `json:"id"`

	// Name is a human-readable label for display surfaces.
	Name string `json:"name"`

	// Kind names the adapter family (e.g., "usb-dmx", "artnet", "loopback").
	Kind string `json:"kind"`

	// Available reports whether a universe may bind to this adapter.
	Available bool `json:"available"`
}

// Provider serves adapter descriptors to the rest of the engine.
//
// The universe registry consults a Provider when connecting a universe;
// implementations must be safe for concurrent use.
type Provider interface {
	// List returns all known adapters, sorted by ID.
	List() []Descriptor

	// Get returns the adapter with the given ID.
	// Returns ErrNotFound if no such adapter exists.
	Get(id string) (Descriptor, error)
}

// StaticProvider is a config-backed Provider.
//
// Adapters are loaded once from config.yaml at startup. Availability can
// be toggled at runtime (e.g., when a dongle is unplugged) but the set of
// known adapters only grows via Register.
type StaticProvider struct {
	mu       sync.RWMutex
	adapters map[string]Descriptor
}

// NewStaticProvider builds a provider from configured adapter entries.
//
// Adapters default to available unless the config says otherwise.
func NewStaticProvider(entries []config.AdapterConfig) *StaticProvider {
	p := &StaticProvider{
		adapters: make(map[string]Descriptor, len(entries)),
	}
	for _, e := range entries {
		available := true
		if e.Available != nil {
			available = *e.Available
		}
		p.adapters[e.ID] = Descriptor{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind,
			Available: available,
		}
	}
	return p
}

// List returns all known adapters, sorted by ID.
func (p *StaticProvider) List() []Descriptor {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Descriptor, 0, len(p.adapters))
	for _, d := range p.adapters {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the adapter with the given ID.
func (p *StaticProvider) Get(id string) (Descriptor, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	d, ok := p.adapters[id]
	if !ok {
		return Descriptor{}, ErrNotFound
	}
	return d, nil
}

// Register adds a new adapter at runtime.
// Returns ErrExists if the ID is already taken.
func (p *StaticProvider) Register(d Descriptor) error {
	if d.ID == "" {
		return ErrInvalidID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.adapters[d.ID]; ok {
		return ErrExists
	}
	p.adapters[d.ID] = d
	return nil
}

// SetAvailable toggles an adapter's availability.
// Returns ErrNotFound if no such adapter exists.
func (p *StaticProvider) SetAvailable(id string, available bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, ok := p.adapters[id]
	if !ok {
		return ErrNotFound
	}
	d.Available = available
	p.adapters[id] = d
	return nil
}
