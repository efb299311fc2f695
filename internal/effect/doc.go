// Package effect runs timed channel mutations: fades, chases, strobes.
//
// Each running effect owns one goroutine driven by a time.Ticker. Ticks
// write into the universe registry through the same batch path as
// direct channel writes, so an effect tick and an operator write never
// tear a channel value.
//
// # Lifecycle
//
// An effect is RUNNING from start until it either finishes naturally
// (fade reaching its target, strobe exhausting its duration) and moves
// to COMPLETED, or is cancelled (Stop, StopAll, universe disconnect)
// and moves to STOPPED. Terminal states are final. Terminal effects
// stay queryable via Status until the engine shuts down.
//
// # Cancellation
//
// Stop cancels the effect's context and then waits for its goroutine
// to exit. When Stop returns, no further write from that effect can
// occur. This is load-bearing for universe disconnects: the registry
// stops all effects before freezing the final channel snapshot.
//
// # Failure inside a tick
//
// A tick whose write fails (universe disconnected mid-run) terminates
// the effect as STOPPED. The error is not returned to the caller that
// started the effect, who has long since moved on; termination is
// observable through Status and the event bus.
package effect
