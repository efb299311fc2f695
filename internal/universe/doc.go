// Package universe manages DMX universe state.
//
// A universe is one 512-channel DMX output line bound to an adapter.
// The Registry tracks every universe the engine has seen, each holding
// a ChannelStore with the current level of all 512 channels.
//
// # Lifecycle
//
// Connect binds a universe ID to an adapter and makes it writable.
// Disconnect stops every effect running on the universe and freezes a
// final snapshot; channel state is retained so Status and inspection
// keep working, but writes and frame encoding are refused until the
// universe reconnects. Reconnecting an existing ID rebinds it (possibly
// to a different adapter) without clearing channel state.
//
// # Wire format
//
// EncodeFrame renders a universe as a standard 513-byte DMX512 packet:
// a zero start code followed by channels 1 through 512 in order.
//
// # Concurrency
//
// All Registry and ChannelStore methods are safe for concurrent use.
// Each universe has its own lock, so a heavy chase on one universe
// never delays writes to another.
package universe
