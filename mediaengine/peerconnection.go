/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package mediaengine adapts github.com/pion/webrtc/v4 to the narrow peer
// connection surface the media session controller drives: build a peer
// connection, register codecs, create offers/answers, add and remove
// senders, and surface OnTrack/OnICECandidate. A room keeps two of these,
// one publisher and one subscriber.
package mediaengine

import (
	"fmt"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v4"

	"github.com/nexusrtc/client-go/signaling/wire"
	"github.com/nexusrtc/client-go/track"
)

// Config configures a PeerConnection.
type Config struct {
	ICEServers []webrtc.ICEServer
}

// DefaultConfig returns a Config with a public STUN server: this client is
// typically behind NAT and needs at least one server-reflexive candidate to
// be reachable.
func DefaultConfig() *Config {
	return &Config{
		ICEServers: []webrtc.ICEServer{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		},
	}
}

// ICEServersFromURLs converts the bare URL strings a JoinResponse/
// ReconnectResponse carries into pion's ICEServer shape.
func ICEServersFromURLs(urls []string) []webrtc.ICEServer {
	if len(urls) == 0 {
		return nil
	}
	out := make([]webrtc.ICEServer, len(urls))
	for i, u := range urls {
		out[i] = webrtc.ICEServer{URLs: []string{u}}
	}
	return out
}

// Sender is the media engine's outbound sender handle. The session
// controller binds it to a track.LocalTrack when publishing, before the
// AddTrackRequest is sent; the SID arrives later with the server's ack. The
// controller rejects a sender whose local id differs from the track's CID.
type Sender struct {
	localID   string
	rtpSender *webrtc.RTPSender
	local     webrtc.TrackLocal
}

func (s *Sender) LocalID() string { return s.localID }

// Receiver is the media engine's inbound receiver handle, bound to a
// track.RemoteTrack when the server's TrackInfo and the engine's
// OnReceiverAdded callback converge on the same SID.
type Receiver struct {
	id          string
	rtpReceiver *webrtc.RTPReceiver
	remoteTrack *webrtc.TrackRemote
}

func (r *Receiver) ID() string                      { return r.id }
func (r *Receiver) RemoteTrack() *webrtc.TrackRemote { return r.remoteTrack }

var (
	_ track.Sender   = (*Sender)(nil)
	_ track.Receiver = (*Receiver)(nil)
)

// PeerConnection wraps one *webrtc.PeerConnection, tagged with the
// publisher/subscriber role it plays.
type PeerConnection struct {
	mu     sync.Mutex
	pc     *webrtc.PeerConnection
	target wire.TrickleTarget

	onICECandidate          func(candidateInit string, final bool)
	onReceiverAdded         func(*Receiver)
	onConnectionStateChange func(webrtc.PeerConnectionState)
}

// New creates a PeerConnection for the given role (publisher or
// subscriber), registering the full default pion codec set and
// interceptors: an SFU client must negotiate whatever codecs the room
// offers, not one fixed codec.
func New(target wire.TrickleTarget, config *Config) (*PeerConnection, error) {
	if config == nil {
		config = DefaultConfig()
	}

	m := &webrtc.MediaEngine{}
	if err := m.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("mediaengine: register codecs: %w", err)
	}

	registry := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(m, registry); err != nil {
		return nil, fmt.Errorf("mediaengine: register interceptors: %w", err)
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(m), webrtc.WithInterceptorRegistry(registry))

	pc, err := api.NewPeerConnection(webrtc.Configuration{ICEServers: config.ICEServers})
	if err != nil {
		return nil, fmt.Errorf("mediaengine: new peer connection: %w", err)
	}

	p := &PeerConnection{pc: pc, target: target}

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		p.mu.Lock()
		cb := p.onICECandidate
		p.mu.Unlock()
		if cb == nil {
			return
		}
		if c == nil {
			cb("", true)
			return
		}
		cb(c.ToJSON().Candidate, false)
	})

	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		p.mu.Lock()
		cb := p.onConnectionStateChange
		p.mu.Unlock()
		if cb != nil {
			cb(s)
		}
	})

	pc.OnTrack(func(remote *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		p.mu.Lock()
		cb := p.onReceiverAdded
		p.mu.Unlock()
		if cb != nil {
			cb(&Receiver{id: remote.ID(), rtpReceiver: receiver, remoteTrack: remote})
		}
	})

	return p, nil
}

// Target reports which signaling role (publisher/subscriber) this
// peer connection plays, used to tag trickled candidates.
func (p *PeerConnection) Target() wire.TrickleTarget { return p.target }

// OnICECandidate registers the callback invoked once per gathered candidate,
// and once more with final=true when gathering completes.
func (p *PeerConnection) OnICECandidate(fn func(candidateInit string, final bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onICECandidate = fn
}

// OnReceiverAdded registers the callback invoked when the remote peer adds a
// track to this connection.
func (p *PeerConnection) OnReceiverAdded(fn func(*Receiver)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReceiverAdded = fn
}

// OnConnectionStateChanged registers the ICE/DTLS aggregate state callback.
func (p *PeerConnection) OnConnectionStateChanged(fn func(webrtc.PeerConnectionState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onConnectionStateChange = fn
}

// AddTrack adds a local track of the given kind to the connection and
// returns its sender handle. localID becomes the sender's LocalID and MUST
// be set to the track's CID by the caller; this
// package does not mint or validate CIDs itself.
func (p *PeerConnection) AddTrack(kind track.Kind, localID string) (*Sender, error) {
	var capability webrtc.RTPCodecCapability
	switch kind {
	case track.KindAudio:
		capability = webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2}
	case track.KindVideo:
		capability = webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000}
	default:
		return nil, fmt.Errorf("mediaengine: unknown track kind %v", kind)
	}

	local, err := webrtc.NewTrackLocalStaticSample(capability, localID, "nexusrtc")
	if err != nil {
		return nil, fmt.Errorf("mediaengine: new local track: %w", err)
	}

	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()

	transceiver, err := pc.AddTransceiverFromTrack(local, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionSendonly,
	})
	if err != nil {
		return nil, fmt.Errorf("mediaengine: add transceiver: %w", err)
	}

	sender := transceiver.Sender()
	go drainRTCP(sender)

	return &Sender{localID: localID, rtpSender: sender, local: local}, nil
}

// SetSenderEnabled disables or re-enables a sender's outbound media without
// tearing down the transceiver, used by the mute path: ReplaceTrack(nil)
// stops RTP while keeping the m-line and its SSRC, so unmuting does not
// require renegotiation.
func (p *PeerConnection) SetSenderEnabled(s *Sender, enabled bool) error {
	if s == nil || s.rtpSender == nil {
		return nil
	}
	if enabled {
		return s.rtpSender.ReplaceTrack(s.local)
	}
	return s.rtpSender.ReplaceTrack(nil)
}

// RemoveTrack detaches a previously added sender from the connection.
func (p *PeerConnection) RemoveTrack(s *Sender) error {
	if s == nil || s.rtpSender == nil {
		return nil
	}
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()
	return pc.RemoveTrack(s.rtpSender)
}

// CreateOffer creates and applies a local SDP offer, waiting for ICE
// gathering to complete so the returned SDP carries host candidates.
func (p *PeerConnection) CreateOffer() (wire.SessionDescription, error) {
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: create offer: %w", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: set local description: %w", err)
	}
	<-webrtc.GatheringCompletePromise(pc)

	local := pc.LocalDescription()
	if local == nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: local description is nil after gathering")
	}
	return wire.SessionDescription{Kind: wire.SDPOffer, SDP: local.SDP}, nil
}

// CreateAnswer creates and applies a local SDP answer.
func (p *PeerConnection) CreateAnswer() (wire.SessionDescription, error) {
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: create answer: %w", err)
	}
	if err := pc.SetLocalDescription(answer); err != nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: set local description: %w", err)
	}
	<-webrtc.GatheringCompletePromise(pc)

	local := pc.LocalDescription()
	if local == nil {
		return wire.SessionDescription{}, fmt.Errorf("mediaengine: local description is nil after gathering")
	}
	return wire.SessionDescription{Kind: wire.SDPAnswer, SDP: local.SDP}, nil
}

// SetRemoteDescription applies a remote offer or answer received over
// signaling.
func (p *PeerConnection) SetRemoteDescription(sd wire.SessionDescription) error {
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()

	var t webrtc.SDPType
	switch sd.Kind {
	case wire.SDPOffer:
		t = webrtc.SDPTypeOffer
	case wire.SDPAnswer:
		t = webrtc.SDPTypeAnswer
	case wire.SDPPranswer:
		t = webrtc.SDPTypePranswer
	case wire.SDPRollback:
		t = webrtc.SDPTypeRollback
	}
	return pc.SetRemoteDescription(webrtc.SessionDescription{Type: t, SDP: sd.SDP})
}

// AddICECandidate applies a trickled remote ICE candidate.
func (p *PeerConnection) AddICECandidate(candidateInit string) error {
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()
	return pc.AddICECandidate(webrtc.ICECandidateInit{Candidate: candidateInit})
}

// Close releases the underlying peer connection.
func (p *PeerConnection) Close() error {
	p.mu.Lock()
	pc := p.pc
	p.mu.Unlock()
	if pc == nil {
		return nil
	}
	return pc.Close()
}

// drainRTCP reads and discards RTCP packets on a sender to keep the
// interceptor chain serviced.
func drainRTCP(sender *webrtc.RTPSender) {
	buf := make([]byte, 1500)
	for {
		if _, _, err := sender.Read(buf); err != nil {
			return
		}
	}
}
