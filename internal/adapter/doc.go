// Package adapter describes the DMX output hardware known to the engine.
//
// An adapter is a physical or virtual interface card (USB-DMX dongle,
// Art-Net node, loopback test device) that a universe binds to when it
// connects. The engine does not drive the hardware itself; it tracks
// which adapters exist and whether they are available for binding.
//
// Adapters are declared in config.yaml and served through a Provider.
// StaticProvider is the config-backed implementation; tests and future
// hotplug discovery can supply their own.
package adapter
