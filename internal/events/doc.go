// Package events distributes engine lifecycle notifications.
//
// Producers (the universe registry, effect engine, and scene store)
// publish Event values to a Bus. Consumers subscribe with a buffered
// channel and receive every event published after they subscribe.
//
// Delivery is best-effort: Publish never blocks a producer. A slow
// subscriber whose buffer is full misses events, and the bus counts
// the drops so operators can spot undersized consumers. The refresh
// path of a lighting engine must never stall behind a stuck WebSocket
// or broker, so this trade is deliberate.
//
// The Relay bridges the bus onto MQTT, publishing each event as JSON
// to dmxcore/event/{type}.
package events
