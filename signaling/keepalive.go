/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package signaling

import (
	"time"

	"github.com/nexusrtc/client-go/signaling/wire"
)

// Ping sends a signaling-level Ping, invoked either by the application or
// by a timer the caller starts; the engine itself starts no timer.
func (e *SignalingEngine) Ping() bool {
	now := time.Now().UnixMilli()
	e.lastPingSent.Store(now)
	return e.send(wire.SignalRequest{Ping: &wire.Ping{Timestamp: now}})
}

// LastRTT returns the round-trip time of the most recent Ping, measured when
// its Pong p arrives, or zero if no Ping was sent, p is nil, or p does not
// answer the most recent Ping.
func (e *SignalingEngine) LastRTT(p *wire.Pong) time.Duration {
	last := e.lastPingSent.Load()
	if last == 0 || p == nil || p.LastPingTimestamp != last {
		return 0
	}
	return time.Duration(time.Now().UnixMilli()-last) * time.Millisecond
}

// StartKeepalive spawns a goroutine that calls Ping on the given interval
// for as long as the engine remains Connected. It returns a stop function
// the caller must invoke when done (e.g. on Disconnect).
func (e *SignalingEngine) StartKeepalive(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if e.State() != StateConnected {
					return
				}
				e.Ping()
			case <-done:
				return
			}
		}
	}()
	return func() {
		select {
		case <-done:
		default:
			close(done)
		}
	}
}
