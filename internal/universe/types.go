package universe

import "time"

// DMX512 constants.
const (
	// NumChannels is the number of channels in one DMX universe.
	NumChannels = 512

	// FrameSize is the wire size of one DMX frame: start code + channels.
	FrameSize = NumChannels + 1

	// StartCode is the DMX512 null start code for dimmer data.
	StartCode = 0x00

	// MaxValue is the highest channel level.
	MaxValue = 255
)

// Status describes a universe's connection state.
type Status string

const (
	// StatusConnected means the universe is bound to an adapter and writable.
	StatusConnected Status = "connected"

	// StatusDisconnected means the universe retains state but refuses
	// writes and frame encoding.
	StatusDisconnected Status = "disconnected"
)

// StatusInfo is a point-in-time view of one universe.
type StatusInfo struct {
	ID            string    `json:"id"`
	AdapterID     string    `json:"adapter_id"`
	Status        Status    `json:"status"`
	ConnectedAt   time.Time `json:"connected_at"`
	LastUpdate    time.Time `json:"last_update,omitempty"`
	ActiveEffects int       `json:"active_effects"`
	FixtureCount  int       `json:"fixture_count"`
}
