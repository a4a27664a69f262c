/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package session

import (
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nexusrtc/client-go/signaling"
)

// Reconnector runs the quick-reconnect policy: on a non-fatal transport
// drop, reconnect with the current session's participant SID so the server
// resumes the session and preserves track SIDs. Concurrent triggers collapse
// into a single attempt via singleflight.
type Reconnector struct {
	logger      Logger
	maxAttempts int
	delay       time.Duration

	sf singleflight.Group
}

func newReconnector(logger Logger, maxAttempts int, delay time.Duration) *Reconnector {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Reconnector{logger: logger, maxAttempts: maxAttempts, delay: delay}
}

// Run attempts a quick reconnect for the controller's current session,
// doubling the delay between attempts. Returns nil once the transport
// reaches Connected.
func (r *Reconnector) Run(c *Controller) error {
	_, err, _ := r.sf.Do("reconnect", func() (any, error) {
		delay := r.delay
		for attempt := 1; attempt <= r.maxAttempts; attempt++ {
			c.mu.Lock()
			params := c.params
			info := c.info
			sid := c.participantSID
			c.mu.Unlock()

			if sid == "" {
				return nil, fmt.Errorf("session: no participant sid to resume")
			}

			r.logger.Printf("session: quick reconnect attempt %d/%d", attempt, r.maxAttempts)
			if c.signaler.Connect(signaling.ForQuickReconnect(params, sid), info) &&
				waitForConnected(c.signaler, 10*time.Second) {
				return nil, nil
			}

			time.Sleep(delay)
			delay *= 2
		}
		return nil, fmt.Errorf("session: quick reconnect failed after %d attempts", r.maxAttempts)
	})
	return err
}

// waitForConnected polls the transport state until it settles: Connected
// succeeds, Disconnected (after leaving Connecting) or the deadline fails.
func waitForConnected(s Signaler, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		switch s.State() {
		case signaling.StateConnected:
			return true
		case signaling.StateDisconnected:
			return false
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}
