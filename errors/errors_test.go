/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportErrorKind_Fatal(t *testing.T) {
	tests := []struct {
		kind  TransportErrorKind
		fatal bool
	}{
		{TransportGeneral, true},
		{TransportNoConnection, true},
		{TransportWriteText, true},
		{TransportWriteBinary, true},
		{TransportCustomHeader, true},
		{TransportSocketOption, false},
		{TransportTLSOptions, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Fatal(); got != tt.fatal {
				t.Errorf("Fatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestTransportError_ErrorMessage(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		e := &TransportError{Kind: TransportSocketOption}
		if !strings.Contains(e.Error(), "socket_option") {
			t.Errorf("Error() = %q, want to contain kind", e.Error())
		}
	})

	t.Run("with wrapped error", func(t *testing.T) {
		inner := fmt.Errorf("connection reset")
		e := &TransportError{Kind: TransportGeneral, Err: inner}
		if !strings.Contains(e.Error(), "connection reset") {
			t.Errorf("Error() = %q, want to contain wrapped message", e.Error())
		}
		if !errors.Is(e, inner) {
			t.Error("expected errors.Is to find the wrapped error via Unwrap")
		}
	})
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("truncated frame")
	e := &DecodeError{Kind: DecodeInvalidFraming, Err: inner}
	if !errors.Is(e, inner) {
		t.Error("expected errors.Is to traverse Unwrap")
	}
}

func TestPublishError_ErrorMessage(t *testing.T) {
	e := &PublishError{Kind: PublishTimeout, CID: "cid-123"}
	msg := e.Error()
	if !strings.Contains(msg, "cid-123") {
		t.Errorf("Error() = %q, want to contain CID", msg)
	}
	if !strings.Contains(msg, "timeout") {
		t.Errorf("Error() = %q, want to contain kind", msg)
	}
}

func TestFatalError_AsInterface(t *testing.T) {
	var err error = &FatalError{Kind: FatalAuth}
	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to succeed")
	}
	if fe.Kind != FatalAuth {
		t.Errorf("Kind = %v, want FatalAuth", fe.Kind)
	}
}

func TestProtocolError_Unwrap(t *testing.T) {
	e := &ProtocolError{Kind: ProtocolMissingRequiredField}
	if e.Unwrap() != nil {
		t.Error("expected nil Unwrap when Err is nil")
	}
}
