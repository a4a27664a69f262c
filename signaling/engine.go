/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package signaling implements the signaling protocol engine: URL assembly,
// the transport state machine, typed request emission, server message
// demultiplexing, reconnect-mode URL wiring and ping/pong keepalive.
package signaling

import (
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"

	sdkerrors "github.com/nexusrtc/client-go/errors"
	"github.com/nexusrtc/client-go/fanout"
	"github.com/nexusrtc/client-go/signaling/wire"
)

// Logger is the interface for engine logging, a single Printf so a caller
// can plug in any structured logger.
type Logger interface {
	Printf(format string, v ...any)
}

// protocolRevisionTrackUpdate is the wire protocol revision at which
// UpdateAudioTrack/UpdateVideoTrack were introduced.
const protocolRevisionTrackUpdate = 10

// Config configures a SignalingEngine.
type Config struct {
	Logger Logger
}

// DefaultConfig returns a Config logging through the standard library.
func DefaultConfig() *Config {
	return &Config{Logger: log.Default()}
}

// TransportListener observes transport state transitions.
type TransportListener interface {
	OnStateChanged(state TransportState)
	OnTransportError(err error)
}

// ServerListener observes demultiplexed server messages, one method per
// response variant.
type ServerListener interface {
	OnJoin(*wire.JoinResponse)
	OnOffer(*wire.SessionDescription)
	OnAnswer(*wire.SessionDescription)
	OnTrickle(*wire.TrickleRequest)
	OnParticipantUpdate(*wire.ParticipantUpdate)
	OnConnectionQuality(*wire.ConnectionQualityUpdate)
	OnRoomUpdate(*wire.RoomUpdateInfo)
	OnSpeakersChanged(*wire.SpeakersChanged)
	OnLeave(*wire.LeaveRequest)
	OnStreamStateUpdate(*wire.StreamStateUpdate)
	OnSubscribedQualityUpdate(*wire.SubscribedQualityUpdate)
	OnSubscriptionPermissionUpdate(*wire.SubscriptionPermissionUpdate)
	OnSubscriptionResponse(*wire.SubscriptionResponse)
	OnTrackPublished(*wire.TrackPublished)
	OnTrackUnpublished(*wire.TrackUnpublished)
	OnTrackSubscribed(*wire.TrackSubscribed)
	OnRefreshToken(*wire.RefreshToken)
	OnReconnectResponse(*wire.ReconnectResponse)
	OnRequestResponse(*wire.RequestResponse)
	OnMute(*wire.MuteTrackRequest)
	OnPong(*wire.Pong)
	OnServerResponseParseError(err error)
}

// Stats is a read-only snapshot of the engine's operational counters.
type Stats struct {
	JoinAttempts  int
	BytesSent     uint64
	BytesReceived uint64
	LastError     error
	LastErrorAt   time.Time
}

// SignalingEngine owns the transport state machine, request fan-out,
// response demultiplexing, listener registries, ping/pong and reconnect URL
// wiring.
type SignalingEngine struct {
	logger    Logger
	transport *CommandTransport
	queue     *fanout.Queue

	transportListeners *fanout.Registry[TransportListener]
	serverListeners    *fanout.Registry[ServerListener]

	state atomic.Int32

	mu   sync.RWMutex
	info ClientInfo

	statsMu sync.Mutex
	stats   Stats

	lastPingSent atomic.Int64
}

// NewEngine creates a SignalingEngine. queue is the event task queue every
// listener dispatch runs on; callers typically share one queue
// across the engine and the media session controller.
func NewEngine(queue *fanout.Queue, config *Config) *SignalingEngine {
	if config == nil {
		config = DefaultConfig()
	}
	return &SignalingEngine{
		logger:             config.Logger,
		transport:          NewCommandTransport(),
		queue:              queue,
		transportListeners: fanout.NewRegistry[TransportListener](),
		serverListeners:    fanout.NewRegistry[ServerListener](),
	}
}

// State returns the engine's current transport state. Safe from any
// goroutine.
func (e *SignalingEngine) State() TransportState {
	return TransportState(e.state.Load())
}

// AddTransportListener / RemoveTransportListener manage the transport-state
// listener registry. Thread-safe.
func (e *SignalingEngine) AddTransportListener(l TransportListener) *fanout.Handle[TransportListener] {
	return e.transportListeners.Add(l)
}

func (e *SignalingEngine) RemoveTransportListener(h *fanout.Handle[TransportListener]) {
	e.transportListeners.Remove(h)
}

// AddServerListener / RemoveServerListener manage the server-message
// listener registry.
func (e *SignalingEngine) AddServerListener(l ServerListener) *fanout.Handle[ServerListener] {
	return e.serverListeners.Add(l)
}

func (e *SignalingEngine) RemoveServerListener(h *fanout.Handle[ServerListener]) {
	e.serverListeners.Remove(h)
}

// Connect assembles the connection URL and drives the transport state
// machine to Connecting, initiating the WebSocket upgrade on its own
// goroutine. It returns immediately; completion is reported asynchronously
// via a transition to Connected or back to Disconnected.
func (e *SignalingEngine) Connect(params ConnectionParams, info ClientInfo) bool {
	if params.Host == "" || params.AuthToken == "" {
		return false
	}
	if !e.transition(StateConnecting) {
		return false
	}

	e.mu.Lock()
	e.info = info
	e.mu.Unlock()

	wsURL, err := BuildURL(params, info)
	if err != nil {
		e.state.Store(int32(StateDisconnected))
		e.emitTransportError(&sdkerrors.FatalError{Kind: sdkerrors.FatalAuth, Err: err})
		return false
	}

	e.statsMu.Lock()
	e.stats.JoinAttempts++
	e.statsMu.Unlock()

	e.transport.OnStateChanged(e.handleTransportStateChanged)
	e.transport.OnBinaryMessage(e.handleBinaryMessage)
	e.transport.OnError(e.handleTransportError)

	go e.transport.Open(wsURL, nil)
	return true
}

// Disconnect transitions to Disconnecting and closes the transport.
// Idempotent from any state other than Disconnected.
func (e *SignalingEngine) Disconnect() {
	if e.State() == StateDisconnected {
		return
	}
	e.transport.Close()
}

func (e *SignalingEngine) handleTransportStateChanged(s TransportState) {
	// An abrupt socket failure surfaces from the transport as Disconnected
	// without an intervening Disconnecting. The state graph only permits
	// Connected -> Disconnecting -> Disconnected, and listeners must observe
	// the transitions in that order, so route through Disconnecting first.
	if s == StateDisconnected && e.State() == StateConnected {
		e.applyTransition(StateDisconnecting)
	}
	e.applyTransition(s)
}

func (e *SignalingEngine) applyTransition(s TransportState) {
	if !e.transition(s) {
		return
	}
	e.transportListeners.Notify(e.queue, func(l TransportListener) {
		l.OnStateChanged(s)
	})
}

func (e *SignalingEngine) handleTransportError(err error) {
	e.statsMu.Lock()
	e.stats.LastError = err
	e.stats.LastErrorAt = time.Now()
	e.statsMu.Unlock()
	e.emitTransportError(err)
}

func (e *SignalingEngine) emitTransportError(err error) {
	e.transportListeners.Notify(e.queue, func(l TransportListener) {
		l.OnTransportError(err)
	})
}

// transition applies the transport state graph. A transition to the same
// state, or to an illegal next state, is a silent no-op; only a legal
// change in state returns true.
func (e *SignalingEngine) transition(next TransportState) bool {
	cur := e.State()
	if cur == next {
		return false
	}
	if !legalTransition(cur, next) {
		return false
	}
	return e.state.CompareAndSwap(int32(cur), int32(next))
}

func legalTransition(cur, next TransportState) bool {
	switch cur {
	case StateDisconnected:
		return next == StateConnecting
	case StateConnecting:
		return next == StateConnected || next == StateDisconnected
	case StateConnected:
		return next == StateDisconnecting
	case StateDisconnecting:
		return next == StateDisconnected
	default:
		return false
	}
}

func (e *SignalingEngine) handleBinaryMessage(data []byte) {
	e.statsMu.Lock()
	e.stats.BytesReceived += uint64(len(data))
	e.statsMu.Unlock()

	resp, err := wire.DecodeSignalResponse(data)
	if err != nil {
		e.serverListeners.Notify(e.queue, func(l ServerListener) {
			l.OnServerResponseParseError(err)
		})
		return
	}
	e.dispatchResponse(resp)
}

// dispatchResponse fans the decoded variant out to its corresponding
// listener method. Unset variants (every field nil, a frame with no
// recognized top-level tag) are dropped silently.
func (e *SignalingEngine) dispatchResponse(r wire.SignalResponse) {
	switch {
	case r.Join != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnJoin(r.Join) })
	case r.Offer != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnOffer(r.Offer) })
	case r.Answer != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnAnswer(r.Answer) })
	case r.Trickle != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnTrickle(r.Trickle) })
	case r.Update != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnParticipantUpdate(r.Update) })
	case r.TrackPublished != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnTrackPublished(r.TrackPublished) })
	case r.Leave != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnLeave(r.Leave) })
	case r.Mute != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnMute(r.Mute) })
	case r.SpeakersChanged != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnSpeakersChanged(r.SpeakersChanged) })
	case r.RoomUpdate != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnRoomUpdate(r.RoomUpdate) })
	case r.ConnectionQuality != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnConnectionQuality(r.ConnectionQuality) })
	case r.StreamStateUpdate != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnStreamStateUpdate(r.StreamStateUpdate) })
	case r.SubscribedQualityUpdate != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnSubscribedQualityUpdate(r.SubscribedQualityUpdate) })
	case r.SubscriptionPermissionUpdate != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnSubscriptionPermissionUpdate(r.SubscriptionPermissionUpdate) })
	case r.RefreshToken != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnRefreshToken(r.RefreshToken) })
	case r.TrackUnpublished != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnTrackUnpublished(r.TrackUnpublished) })
	case r.Pong != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnPong(r.Pong) })
	case r.ReconnectResponse != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnReconnectResponse(r.ReconnectResponse) })
	case r.SubscriptionResponse != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnSubscriptionResponse(r.SubscriptionResponse) })
	case r.RequestResponse != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnRequestResponse(r.RequestResponse) })
	case r.TrackSubscribed != nil:
		e.serverListeners.Notify(e.queue, func(l ServerListener) { l.OnTrackSubscribed(r.TrackSubscribed) })
	}
}

// send is the single chokepoint every Send* method funnels through: it
// hands the frame to the transport and does not await an ack.
func (e *SignalingEngine) send(req wire.SignalRequest) bool {
	if e.State() != StateConnected {
		return false
	}
	frame := req.Encode()
	ok := e.transport.SendBinary(frame)
	if ok {
		e.statsMu.Lock()
		e.stats.BytesSent += uint64(len(frame))
		e.statsMu.Unlock()
	}
	return ok
}

func (e *SignalingEngine) SendOffer(sd wire.SessionDescription) bool {
	return e.send(wire.SignalRequest{Offer: &sd})
}

func (e *SignalingEngine) SendAnswer(sd wire.SessionDescription) bool {
	return e.send(wire.SignalRequest{Answer: &sd})
}

func (e *SignalingEngine) SendTrickle(t wire.TrickleRequest) bool {
	return e.send(wire.SignalRequest{Trickle: &t})
}

func (e *SignalingEngine) SendAddTrack(req wire.AddTrackRequest) bool {
	return e.send(wire.SignalRequest{AddTrack: &req})
}

func (e *SignalingEngine) SendMute(req wire.MuteTrackRequest) bool {
	return e.send(wire.SignalRequest{Mute: &req})
}

func (e *SignalingEngine) SendSubscription(req wire.SubscriptionRequest) bool {
	return e.send(wire.SignalRequest{Subscription: &req})
}

func (e *SignalingEngine) SendTrackSetting(req wire.TrackSettingRequest) bool {
	return e.send(wire.SignalRequest{TrackSetting: &req})
}

func (e *SignalingEngine) SendLeave(req wire.LeaveRequest) bool {
	return e.send(wire.SignalRequest{Leave: &req})
}

func (e *SignalingEngine) SendUpdateLayers(req wire.UpdateLayersRequest) bool {
	return e.send(wire.SignalRequest{UpdateLayers: &req})
}

func (e *SignalingEngine) SendSubscriptionPermission(req wire.SubscriptionPermissionRequest) bool {
	return e.send(wire.SignalRequest{SubscriptionPermission: &req})
}

func (e *SignalingEngine) SendSyncState(req wire.SyncStateRequest) bool {
	return e.send(wire.SignalRequest{SyncState: &req})
}

func (e *SignalingEngine) SendSimulate(req wire.SimulateScenarioRequest) bool {
	return e.send(wire.SignalRequest{Simulate: &req})
}

func (e *SignalingEngine) SendUpdateMetadata(req wire.UpdateParticipantMetadataRequest) bool {
	return e.send(wire.SignalRequest{UpdateMetadata: &req})
}

// SendUpdateAudioTrack and SendUpdateVideoTrack are gated on the
// negotiated protocol revision: below protocolRevisionTrackUpdate they
// refuse to send and return false.
func (e *SignalingEngine) SendUpdateAudioTrack(req wire.UpdateLocalTrackRequest) bool {
	if !e.supportsTrackUpdate() {
		return false
	}
	return e.send(wire.SignalRequest{UpdateAudioTrack: &req})
}

func (e *SignalingEngine) SendUpdateVideoTrack(req wire.UpdateLocalTrackRequest) bool {
	if !e.supportsTrackUpdate() {
		return false
	}
	return e.send(wire.SignalRequest{UpdateVideoTrack: &req})
}

func (e *SignalingEngine) supportsTrackUpdate() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.info.Protocol >= protocolRevisionTrackUpdate
}

// Stats returns a snapshot of the engine's operational counters.
func (e *SignalingEngine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}
