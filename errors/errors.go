/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package errors defines the sum-typed error kinds the SDK surfaces to
// callers: transport failures, codec failures, protocol violations, publish
// failures, and fatal session errors. Each kind embeds a common base so
// callers can use errors.As to reach shared fields regardless of the
// specific sub-type.
package errors

import "fmt"

// TransportErrorKind enumerates the ways the websocket transport collaborator
// can fail.
type TransportErrorKind string

const (
	TransportGeneral      TransportErrorKind = "general"
	TransportNoConnection TransportErrorKind = "no_connection"
	TransportWriteText    TransportErrorKind = "write_text"
	TransportWriteBinary  TransportErrorKind = "write_binary"
	TransportCustomHeader TransportErrorKind = "custom_header"
	TransportSocketOption TransportErrorKind = "socket_option"
	TransportTLSOptions   TransportErrorKind = "tls_options"
)

// Fatal reports whether this kind must transition the engine to Disconnected.
// SocketOption is the sole non-fatal kind: it is logged and the connection
// continues.
func (k TransportErrorKind) Fatal() bool {
	return k != TransportSocketOption
}

// TransportError wraps a failure originating in the websocket collaborator.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("transport error (%s)", e.Kind)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeErrorKind enumerates serialization codec failure modes.
type DecodeErrorKind string

const (
	DecodeInvalidFraming  DecodeErrorKind = "invalid_framing"
	DecodeUnknownVariant  DecodeErrorKind = "unknown_variant"
	DecodeFieldOutOfRange DecodeErrorKind = "field_out_of_range"
)

// DecodeError is returned by the serialization codec. Frames that fail to
// decode are dropped by the caller; the connection stays up.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decode error (%s)", e.Kind)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolErrorKind enumerates signaling-engine-level protocol violations.
type ProtocolErrorKind string

const (
	ProtocolUnexpectedVariantInState ProtocolErrorKind = "unexpected_variant_in_state"
	ProtocolMissingRequiredField     ProtocolErrorKind = "missing_required_field"
)

// ProtocolError is logged and dropped; it never disconnects the session.
type ProtocolError struct {
	Kind ProtocolErrorKind
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("protocol error (%s)", e.Kind)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// PublishErrorKind enumerates why a local track publish failed.
type PublishErrorKind string

const (
	PublishCidMismatch    PublishErrorKind = "cid_mismatch"
	PublishTrackNotAccepted PublishErrorKind = "track_not_accepted"
	PublishTimeout        PublishErrorKind = "timeout"
)

// PublishError surfaces to the application listener; the sender binding for
// the affected track is released and the track becomes unpublished.
type PublishError struct {
	Kind PublishErrorKind
	CID  string
	Err  error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish error (%s) for cid %s: %v", e.Kind, e.CID, e.Err)
	}
	return fmt.Sprintf("publish error (%s) for cid %s", e.Kind, e.CID)
}

func (e *PublishError) Unwrap() error { return e.Err }

// FatalErrorKind enumerates errors that forbid auto-reconnect.
type FatalErrorKind string

const (
	FatalSSL             FatalErrorKind = "ssl"
	FatalAuth            FatalErrorKind = "auth"
	FatalProtocolVersion FatalErrorKind = "protocol_version"
)

// FatalError transitions the room to Disconnected, clears all bindings, and
// forbids auto-reconnect regardless of origin.
type FatalError struct {
	Kind FatalErrorKind
	Err  error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fatal error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fatal error (%s)", e.Kind)
}

func (e *FatalError) Unwrap() error { return e.Err }
