package effect

import (
	"fmt"

	"github.com/stagelight/dmxcore/internal/universe"
)

// validateChannels checks a channel set is non-empty and in range.
func validateChannels(channels []int) error {
	if len(channels) == 0 {
		return fmt.Errorf("%w: empty channel set", ErrInvalidParameters)
	}
	for _, ch := range channels {
		if ch < 1 || ch > universe.NumChannels {
			return fmt.Errorf("%w: channel %d out of range 1-%d", ErrInvalidParameters, ch, universe.NumChannels)
		}
	}
	return nil
}

func (p FadeParams) validate() error {
	if err := validateChannels(p.Channels); err != nil {
		return err
	}
	if p.Target < 0 || p.Target > universe.MaxValue {
		return fmt.Errorf("%w: target %d out of range 0-%d", ErrInvalidParameters, p.Target, universe.MaxValue)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidParameters)
	}
	return nil
}

func (p ChaseParams) validate() error {
	if len(p.Groups) == 0 {
		return fmt.Errorf("%w: empty group list", ErrInvalidParameters)
	}
	for i, group := range p.Groups {
		if err := validateChannels(group); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}
	if p.StepInterval <= 0 {
		return fmt.Errorf("%w: step interval must be positive", ErrInvalidParameters)
	}
	return nil
}

func (p StrobeParams) validate() error {
	if err := validateChannels(p.Channels); err != nil {
		return err
	}
	if p.FrequencyHz <= 0 {
		return fmt.Errorf("%w: frequency must be positive", ErrInvalidParameters)
	}
	if p.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidParameters)
	}
	return nil
}
