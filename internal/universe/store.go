package universe

import (
	"fmt"
	"sync"
	"time"
)

// ChannelStore holds the current level of all 512 channels in one universe.
//
// Channels are numbered 1..512 at the API surface. All methods are safe
// for concurrent use; SetMany applies its writes atomically so a reader
// never observes a half-applied batch.
type ChannelStore struct {
	mu         sync.RWMutex
	values     [NumChannels]byte
	lastUpdate time.Time
}

// NewChannelStore creates a store with all channels at zero.
func NewChannelStore() *ChannelStore {
	return &ChannelStore{}
}

// validateChannel checks a channel number against 1..512.
func validateChannel(channel int) error {
	if channel < 1 || channel > NumChannels {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrChannelOutOfRange, channel, NumChannels)
	}
	return nil
}

// validateValue checks a level against 0..255.
func validateValue(value int) error {
	if value < 0 || value > MaxValue {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrValueOutOfRange, value, MaxValue)
	}
	return nil
}

// Set writes one channel level.
// Returns ErrChannelOutOfRange or ErrValueOutOfRange on bad input.
func (s *ChannelStore) Set(channel, value int) error {
	if err := validateChannel(channel); err != nil {
		return err
	}
	if err := validateValue(value); err != nil {
		return err
	}

	s.mu.Lock()
	s.values[channel-1] = byte(value)
	s.lastUpdate = time.Now().UTC()
	s.mu.Unlock()

	return nil
}

// SetMany writes a batch of channel levels under one lock acquisition.
//
// Invalid entries are skipped rather than aborting the batch, so a
// partially stale batch still lands its good writes. The return value
// is the number of entries applied.
func (s *ChannelStore) SetMany(values map[int]int) int {
	if len(values) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for channel, value := range values {
		if validateChannel(channel) != nil || validateValue(value) != nil {
			continue
		}
		s.values[channel-1] = byte(value)
		applied++
	}
	if applied > 0 {
		s.lastUpdate = time.Now().UTC()
	}
	return applied
}

// Get reads one channel level.
func (s *ChannelStore) Get(channel int) (int, error) {
	if err := validateChannel(channel); err != nil {
		return 0, err
	}

	s.mu.RLock()
	v := s.values[channel-1]
	s.mu.RUnlock()

	return int(v), nil
}

// Snapshot returns a copy of all 512 channel levels.
// Index 0 holds channel 1.
func (s *ChannelStore) Snapshot() [NumChannels]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// LastUpdate returns when the store was last written.
// The zero time means no write has happened yet.
func (s *ChannelStore) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}
