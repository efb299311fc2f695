// Package mqtt provides MQTT client connectivity for the DMX engine.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The engine publishes lifecycle events (universe connect/disconnect,
// effect start/stop, scene loads, channel changes) to the broker so that
// consoles, wall panels, and recording tools can follow show state
// without polling the HTTP API.
//
//	DMX Engine → MQTT Broker → Consoles / Panels / Recorders
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.Event("universe.connected")
//	client.Publish(topic, []byte(`{"universe_id":"main"}`), 1, false)
package mqtt
