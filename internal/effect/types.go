package effect

import "time"

// Kind names an effect algorithm.
type Kind string

const (
	KindFade   Kind = "fade"
	KindChase  Kind = "chase"
	KindStrobe Kind = "strobe"
)

// State is an effect's run state.
// Transitions only run forward: RUNNING to COMPLETED or STOPPED.
type State string

const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateStopped   State = "stopped"
)

// FadeParams interpolates channels from their current level to Target
// over Duration.
type FadeParams struct {
	Channels []int         `json:"channels"`
	Target   int           `json:"target"`
	Duration time.Duration `json:"duration"`
}

// ChaseParams cycles through channel groups, lighting one group at
// full per step. Runs until stopped.
type ChaseParams struct {
	Groups       [][]int       `json:"groups"`
	StepInterval time.Duration `json:"step_interval"`
}

// StrobeParams toggles channels between 0 and 255 at FrequencyHz.
// A zero Duration runs until stopped; a positive Duration completes
// naturally once elapsed.
type StrobeParams struct {
	Channels    []int         `json:"channels"`
	FrequencyHz float64       `json:"frequency_hz"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// Effect is a point-in-time view of one effect.
type Effect struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	UniverseID string    `json:"universe_id"`
	State      State     `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at,omitempty"`

	// Kind-specific parameters, populated per Kind.
	Channels     []int         `json:"channels,omitempty"`
	Groups       [][]int       `json:"groups,omitempty"`
	Target       int           `json:"target,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	FrequencyHz  float64       `json:"frequency_hz,omitempty"`
	StepInterval time.Duration `json:"step_interval,omitempty"`
}

// deepCopy returns an independent copy of the effect view.
func (e *Effect) deepCopy() Effect {
	clone := *e
	if e.Channels != nil {
		clone.Channels = append([]int(nil), e.Channels...)
	}
	if e.Groups != nil {
		clone.Groups = make([][]int, len(e.Groups))
		for i, g := range e.Groups {
			clone.Groups[i] = append([]int(nil), g...)
		}
	}
	return clone
}
