/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package signaling

import "testing"

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name   string
		params ConnectionParams
		want   Mode
	}{
		{"fresh join", ConnectionParams{}, ModeFullJoin},
		{"quick reconnect", ConnectionParams{ParticipantSID: "P1"}, ModeQuickReconnect},
		{"publish only", ConnectionParams{PublishOnly: "room1"}, ModePublishOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMode(tt.params); got != tt.want {
				t.Errorf("ResolveMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForQuickReconnect_ClearsPublishOnly(t *testing.T) {
	params := ConnectionParams{Host: "wss://sfu.example/", AuthToken: "T", PublishOnly: "room1"}
	got := ForQuickReconnect(params, "P1")

	if got.ParticipantSID != "P1" {
		t.Errorf("ParticipantSID = %q, want P1", got.ParticipantSID)
	}
	if got.PublishOnly != "" {
		t.Errorf("expected PublishOnly cleared, got %q", got.PublishOnly)
	}
	if ResolveMode(got) != ModeQuickReconnect {
		t.Errorf("ResolveMode() = %v, want ModeQuickReconnect", ResolveMode(got))
	}
}
