/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package signaling

// Mode is the reconnect shape a ConnectionParams resolves to.
type Mode int

const (
	// ModeFullJoin is a fresh session; the server issues a new participant SID.
	ModeFullJoin Mode = iota
	// ModeQuickReconnect resumes an existing participant session; the server
	// preserves track SIDs.
	ModeQuickReconnect
	// ModePublishOnly is a one-way publisher endpoint.
	ModePublishOnly
)

func (m Mode) String() string {
	switch m {
	case ModeQuickReconnect:
		return "quick_reconnect"
	case ModePublishOnly:
		return "publish_only"
	default:
		return "full_join"
	}
}

// ResolveMode reports which reconnect shape params encodes. ParticipantSID
// takes precedence over PublishOnly if, contrary to the table's intent, a
// caller sets both: quick reconnect preserves more session state and is the
// safer default.
func ResolveMode(params ConnectionParams) Mode {
	switch {
	case params.ParticipantSID != "":
		return ModeQuickReconnect
	case params.PublishOnly != "":
		return ModePublishOnly
	default:
		return ModeFullJoin
	}
}

// ForQuickReconnect returns a copy of params configured for a quick
// reconnect against the given participant SID. PublishOnly is cleared since
// the two modes are mutually exclusive.
func ForQuickReconnect(params ConnectionParams, participantSID string) ConnectionParams {
	params.ParticipantSID = participantSID
	params.PublishOnly = ""
	return params
}
