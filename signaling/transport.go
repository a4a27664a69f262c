/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package signaling

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	sdkerrors "github.com/nexusrtc/client-go/errors"
)

// TransportState mirrors the websocket collaborator's own state set
//: {Connecting, Connected, Disconnecting, Disconnected}.
type TransportState int

const (
	StateDisconnected TransportState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s TransportState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}

// CommandTransport is the minimal capability the signaling engine needs
// from the websocket: send one binary frame, send one text frame, receive a
// stream of either. It wraps *websocket.Conn directly.
type CommandTransport struct {
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn

	onStateChanged  func(TransportState)
	onBinaryMessage func([]byte)
	onTextMessage   func(string)
	onError         func(error)
}

// NewCommandTransport creates a transport with a bounded handshake timeout.
func NewCommandTransport() *CommandTransport {
	return &CommandTransport{
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// OnStateChanged, OnBinaryMessage, OnTextMessage and OnError register the
// transport callbacks. They must be set before Open is called; the
// transport invokes none of them concurrently with Open itself.
func (t *CommandTransport) OnStateChanged(fn func(TransportState))  { t.onStateChanged = fn }
func (t *CommandTransport) OnBinaryMessage(fn func([]byte))         { t.onBinaryMessage = fn }
func (t *CommandTransport) OnTextMessage(fn func(string))           { t.onTextMessage = fn }
func (t *CommandTransport) OnError(fn func(error))                  { t.onError = fn }

// Open dials the websocket URL and starts the read loop on its own
// goroutine; inbound-frame and state-change callbacks fire from there, not
// from the caller's goroutine. Open blocks until the handshake completes or
// fails.
func (t *CommandTransport) Open(wsURL string, header http.Header) bool {
	t.emitState(StateConnecting)

	conn, _, err := t.dialer.Dial(wsURL, header)
	if err != nil {
		t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportGeneral, Err: err})
		t.emitState(StateDisconnected)
		return false
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	t.emitState(StateConnected)
	go t.readLoop(conn)
	return true
}

// Close gracefully closes the websocket: a normal-closure control frame
// followed by the TCP close.
func (t *CommandTransport) Close() {
	t.emitState(StateDisconnecting)

	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn == nil {
		t.emitState(StateDisconnected)
		return
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnect"))
	_ = conn.Close()
	t.emitState(StateDisconnected)
}

// SendBinary hands a binary frame to the websocket. Returns false if there is
// no live connection or the write fails.
func (t *CommandTransport) SendBinary(b []byte) bool {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportNoConnection})
		return false
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportWriteBinary, Err: err})
		return false
	}
	return true
}

// SendText hands a text frame to the websocket.
func (t *CommandTransport) SendText(s string) bool {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportNoConnection})
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
		t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportWriteText, Err: err})
		return false
	}
	return true
}

// SendPing writes a protocol-level websocket ping frame, distinct from the
// signaling-level Ping/Pong request pair.
func (t *CommandTransport) SendPing(data []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("signaling: no connection")
	}
	return conn.WriteMessage(websocket.PingMessage, data)
}

func (t *CommandTransport) readLoop(conn *websocket.Conn) {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.emitError(&sdkerrors.TransportError{Kind: sdkerrors.TransportGeneral, Err: err})
			t.mu.Lock()
			if t.conn == conn {
				t.conn = nil
			}
			t.mu.Unlock()
			t.emitState(StateDisconnected)
			return
		}

		switch kind {
		case websocket.BinaryMessage:
			if t.onBinaryMessage != nil {
				t.onBinaryMessage(data)
			}
		case websocket.TextMessage:
			if t.onTextMessage != nil {
				t.onTextMessage(string(data))
			}
		}
	}
}

func (t *CommandTransport) emitState(s TransportState) {
	if t.onStateChanged != nil {
		t.onStateChanged(s)
	}
}

func (t *CommandTransport) emitError(err error) {
	if t.onError != nil {
		t.onError(err)
	}
}
