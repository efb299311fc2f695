package scene

import "time"

// Scene is a named snapshot of channel values across universes.
type Scene struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Universes maps universe ID to channel number to level.
	Universes map[string]map[int]int `json:"universes"`
}

// DeepCopy returns an independent copy of the scene.
func (s *Scene) DeepCopy() *Scene {
	clone := *s
	if s.Universes != nil {
		clone.Universes = make(map[string]map[int]int, len(s.Universes))
		for id, channels := range s.Universes {
			inner := make(map[int]int, len(channels))
			for ch, v := range channels {
				inner[ch] = v
			}
			clone.Universes[id] = inner
		}
	}
	return &clone
}

// ChannelCount returns the total number of channel entries in the scene.
func (s *Scene) ChannelCount() int {
	n := 0
	for _, channels := range s.Universes {
		n += len(channels)
	}
	return n
}
