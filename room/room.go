/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package room is the SDK's top-level facade: one Room owns the event task
// queue, the signaling engine, the media session controller and the
// publisher/subscriber peer connections, and exposes connect/disconnect,
// publish/unpublish and mute to the application.
package room

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nexusrtc/client-go/fanout"
	"github.com/nexusrtc/client-go/mediaengine"
	"github.com/nexusrtc/client-go/session"
	"github.com/nexusrtc/client-go/signaling"
	"github.com/nexusrtc/client-go/signaling/wire"
	"github.com/nexusrtc/client-go/track"
)

// Logger is the room's logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Config configures a Room.
type Config struct {
	Logger Logger

	// AutoSubscribe asks the server to subscribe this participant to every
	// published track automatically.
	AutoSubscribe bool

	// AdaptiveStream lets the server adjust delivered video quality to the
	// subscriber's consumption.
	AdaptiveStream bool

	// PublishOnly, when non-empty, connects a one-way publisher endpoint
	// under the given target name instead of a full participant.
	PublishOnly string

	// Encryption is the room-level end-to-end encryption mode every
	// published track must match.
	Encryption track.EncryptionMode

	AutoReconnect        bool
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration

	// KeepaliveInterval is the signaling Ping cadence while connected.
	// Zero disables the keepalive timer.
	KeepaliveInterval time.Duration

	// Media configures the ICE servers used before the JoinResponse
	// supplies the room's own.
	Media *mediaengine.Config

	// System overrides the host system-info collector; nil uses the
	// runtime-backed default.
	System SystemInfo
}

// DefaultConfig returns the configuration a typical conferencing client
// wants: auto-subscribe on, quick reconnect on, a 30 second keepalive.
func DefaultConfig() *Config {
	return &Config{
		Logger:               log.Default(),
		AutoSubscribe:        true,
		AutoReconnect:        true,
		MaxReconnectAttempts: 3,
		ReconnectDelay:       2 * time.Second,
		KeepaliveInterval:    30 * time.Second,
	}
}

// Room is a single conferencing session, alive from Connect to Disconnect.
type Room struct {
	cfg    *Config
	logger Logger

	queue      *fanout.Queue
	engine     *signaling.SignalingEngine
	controller *session.Controller
	publisher  *mediaengine.PeerConnection
	subscriber *mediaengine.PeerConnection

	// listener registration handles; retained so the weak registry entries
	// stay live for the room's lifetime.
	transportHandle *fanout.Handle[signaling.TransportListener]
	serverHandle    *fanout.Handle[signaling.ServerListener]
	selfHandle      *fanout.Handle[session.Listener]

	mu            sync.Mutex
	stopKeepalive func()
	closed        bool
}

// NewRoom builds a Room and wires its subsystems together: the signaling
// engine and session controller share one event task queue, the controller
// registers for transport and server events, and the peer connections feed
// their ICE candidates and receivers back into the controller.
func NewRoom(config *Config) (*Room, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	queue := fanout.NewQueue()
	engine := signaling.NewEngine(queue, &signaling.Config{Logger: config.Logger})

	publisher, err := mediaengine.New(wire.TargetPublisher, config.Media)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("room: publisher peer connection: %w", err)
	}
	subscriber, err := mediaengine.New(wire.TargetSubscriber, config.Media)
	if err != nil {
		_ = publisher.Close()
		queue.Close()
		return nil, fmt.Errorf("room: subscriber peer connection: %w", err)
	}

	controller := session.New(queue, engine,
		&engineAdapter{pc: publisher}, &engineAdapter{pc: subscriber},
		&session.Config{
			Logger:               config.Logger,
			Encryption:           config.Encryption,
			AutoReconnect:        config.AutoReconnect,
			MaxReconnectAttempts: config.MaxReconnectAttempts,
			ReconnectDelay:       config.ReconnectDelay,
		})

	r := &Room{
		cfg:        config,
		logger:     config.Logger,
		queue:      queue,
		engine:     engine,
		controller: controller,
		publisher:  publisher,
		subscriber: subscriber,
	}

	r.transportHandle = engine.AddTransportListener(controller)
	r.serverHandle = engine.AddServerListener(controller)
	r.selfHandle = controller.AddListener(roomListener{r})

	publisher.OnICECandidate(func(candidateInit string, final bool) {
		controller.HandleLocalCandidate(wire.TargetPublisher, candidateInit, final)
	})
	subscriber.OnICECandidate(func(candidateInit string, final bool) {
		controller.HandleLocalCandidate(wire.TargetSubscriber, candidateInit, final)
	})
	subscriber.OnReceiverAdded(func(recv *mediaengine.Receiver) {
		controller.HandleReceiverAdded(recv)
	})

	return r, nil
}

// Connect joins the room at host with the given auth token. It returns false
// if the preconditions fail; the asynchronous outcome is observed through
// AddListener's OnConnectionStateChanged.
func (r *Room) Connect(host, authToken string) bool {
	params := signaling.ConnectionParams{
		Host:           host,
		AuthToken:      authToken,
		AutoSubscribe:  r.cfg.AutoSubscribe,
		AdaptiveStream: r.cfg.AdaptiveStream,
		PublishOnly:    r.cfg.PublishOnly,
	}
	return r.controller.Connect(params, NewClientInfo(r.cfg.System))
}

// Disconnect leaves the room gracefully and releases every owned resource.
// The Room is terminal afterward; build a new one to rejoin.
func (r *Room) Disconnect() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	stop := r.stopKeepalive
	r.stopKeepalive = nil
	r.mu.Unlock()

	if stop != nil {
		stop()
	}
	r.controller.Disconnect()
	_ = r.publisher.Close()
	_ = r.subscriber.Close()
	r.queue.Close()
}

// Publish announces a local track to the room.
func (r *Room) Publish(t *track.LocalTrack) error { return r.controller.Publish(t) }

// Unpublish withdraws a previously published local track by CID.
func (r *Room) Unpublish(cid string) error { return r.controller.Unpublish(cid) }

// Mute flips a local track's mute state by CID.
func (r *Room) Mute(cid string, muted bool) error { return r.controller.Mute(cid, muted) }

// AddListener subscribes to session events; keep the handle alive for the
// duration of the subscription.
func (r *Room) AddListener(l session.Listener) *fanout.Handle[session.Listener] {
	return r.controller.AddListener(l)
}

// RemoveListener drops a previously added subscription.
func (r *Room) RemoveListener(h *fanout.Handle[session.Listener]) {
	r.controller.RemoveListener(h)
}

// LocalTracks returns a snapshot of this participant's tracks.
func (r *Room) LocalTracks() []*track.LocalTrack { return r.controller.LocalTracks() }

// RemoteTracks returns a snapshot of the subscribed remote tracks.
func (r *Room) RemoteTracks() []*track.RemoteTrack { return r.controller.RemoteTracks() }

// Participants returns a snapshot of the room roster.
func (r *Room) Participants() []wire.ParticipantInfo { return r.controller.Participants() }

// ParticipantSID returns this participant's server-issued SID, or "" before
// join.
func (r *Room) ParticipantSID() string { return r.controller.ParticipantSID() }

// State returns the signaling transport state.
func (r *Room) State() signaling.TransportState { return r.engine.State() }

// Stats returns the signaling engine's operational counters.
func (r *Room) Stats() signaling.Stats { return r.engine.Stats() }

// roomListener manages the keepalive timer against the connection lifecycle.
type roomListener struct{ r *Room }

func (l roomListener) OnConnectionStateChanged(s signaling.TransportState) {
	r := l.r
	switch s {
	case signaling.StateConnected:
		if r.cfg.KeepaliveInterval <= 0 {
			return
		}
		r.mu.Lock()
		if r.stopKeepalive == nil && !r.closed {
			r.stopKeepalive = r.engine.StartKeepalive(r.cfg.KeepaliveInterval)
		}
		r.mu.Unlock()
	case signaling.StateDisconnected:
		r.mu.Lock()
		stop := r.stopKeepalive
		r.stopKeepalive = nil
		r.mu.Unlock()
		if stop != nil {
			stop()
		}
	}
}

func (roomListener) OnSIDChanged(string, string)            {}
func (roomListener) OnMuteChanged(string, bool)             {}
func (roomListener) OnRemoteSideMuteChanged(string, bool)   {}
func (roomListener) OnTrackSubscribed(*track.RemoteTrack)   {}
func (roomListener) OnTrackUnsubscribed(string)             {}
func (roomListener) OnPublishError(error)                   {}
func (roomListener) OnTransportError(error)                 {}
func (roomListener) OnDisconnected(error)                   {}

// engineAdapter narrows mediaengine.PeerConnection to the session package's
// MediaEngine collaborator interface.
type engineAdapter struct {
	pc *mediaengine.PeerConnection
}

var _ session.MediaEngine = (*engineAdapter)(nil)

func (a *engineAdapter) AddTrack(kind track.Kind, localID string) (track.Sender, error) {
	return a.pc.AddTrack(kind, localID)
}

func (a *engineAdapter) RemoveTrack(s track.Sender) error {
	sender, ok := s.(*mediaengine.Sender)
	if !ok {
		return fmt.Errorf("room: sender %T is not a media engine sender", s)
	}
	return a.pc.RemoveTrack(sender)
}

func (a *engineAdapter) SetSenderEnabled(s track.Sender, enabled bool) error {
	sender, ok := s.(*mediaengine.Sender)
	if !ok {
		return fmt.Errorf("room: sender %T is not a media engine sender", s)
	}
	return a.pc.SetSenderEnabled(sender, enabled)
}

func (a *engineAdapter) CreateOffer() (wire.SessionDescription, error)  { return a.pc.CreateOffer() }
func (a *engineAdapter) CreateAnswer() (wire.SessionDescription, error) { return a.pc.CreateAnswer() }

func (a *engineAdapter) SetRemoteDescription(sd wire.SessionDescription) error {
	return a.pc.SetRemoteDescription(sd)
}

func (a *engineAdapter) AddICECandidate(candidateInit string) error {
	return a.pc.AddICECandidate(candidateInit)
}

func (a *engineAdapter) Close() error { return a.pc.Close() }
