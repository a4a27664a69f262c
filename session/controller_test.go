/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	sdkerrors "github.com/nexusrtc/client-go/errors"
	"github.com/nexusrtc/client-go/fanout"
	"github.com/nexusrtc/client-go/signaling"
	"github.com/nexusrtc/client-go/signaling/wire"
	"github.com/nexusrtc/client-go/track"
)

// fakeSignaler records every request handed to it and reports a fixed
// transport state.
type fakeSignaler struct {
	mu           sync.Mutex
	connectDelay time.Duration
	state        signaling.TransportState
	addTracks []wire.AddTrackRequest
	mutes     []wire.MuteTrackRequest
	offers    []wire.SessionDescription
	answers   []wire.SessionDescription
	trickles  []wire.TrickleRequest
	leaves    []wire.LeaveRequest
	syncs     []wire.SyncStateRequest
	connects  []signaling.ConnectionParams
}

func newFakeSignaler() *fakeSignaler {
	return &fakeSignaler{state: signaling.StateConnected}
}

func (f *fakeSignaler) Connect(params signaling.ConnectionParams, info signaling.ClientInfo) bool {
	if f.connectDelay > 0 {
		time.Sleep(f.connectDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects = append(f.connects, params)
	f.state = signaling.StateConnected
	return true
}

func (f *fakeSignaler) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = signaling.StateDisconnected
}

func (f *fakeSignaler) State() signaling.TransportState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSignaler) SendOffer(sd wire.SessionDescription) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offers = append(f.offers, sd)
	return true
}

func (f *fakeSignaler) SendAnswer(sd wire.SessionDescription) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, sd)
	return true
}

func (f *fakeSignaler) SendTrickle(t wire.TrickleRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trickles = append(f.trickles, t)
	return true
}

func (f *fakeSignaler) SendAddTrack(r wire.AddTrackRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addTracks = append(f.addTracks, r)
	return true
}

func (f *fakeSignaler) SendMute(r wire.MuteTrackRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutes = append(f.mutes, r)
	return true
}

func (f *fakeSignaler) SendLeave(r wire.LeaveRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaves = append(f.leaves, r)
	return true
}

func (f *fakeSignaler) SendSyncState(r wire.SyncStateRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncs = append(f.syncs, r)
	return true
}

func (f *fakeSignaler) muteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.mutes)
}

// fakeSender and fakeReceiver are the media handles the fake engine vends.
type fakeSender struct{ localID string }

func (s *fakeSender) LocalID() string { return s.localID }

type fakeReceiver struct{ id string }

func (r *fakeReceiver) ID() string { return r.id }

// fakeEngine satisfies MediaEngine without touching the network. senderID
// overrides the vended sender's local id to provoke a CID mismatch.
type fakeEngine struct {
	mu       sync.Mutex
	senderID string
	added    []string
	removed  []string
	disabled map[string]bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{disabled: make(map[string]bool)}
}

func (e *fakeEngine) AddTrack(kind track.Kind, localID string) (track.Sender, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.added = append(e.added, localID)
	id := localID
	if e.senderID != "" {
		id = e.senderID
	}
	return &fakeSender{localID: id}, nil
}

func (e *fakeEngine) RemoveTrack(s track.Sender) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removed = append(e.removed, s.LocalID())
	return nil
}

func (e *fakeEngine) SetSenderEnabled(s track.Sender, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled[s.LocalID()] = !enabled
	return nil
}

func (e *fakeEngine) CreateOffer() (wire.SessionDescription, error) {
	return wire.SessionDescription{Kind: wire.SDPOffer, SDP: "v=0 offer"}, nil
}

func (e *fakeEngine) CreateAnswer() (wire.SessionDescription, error) {
	return wire.SessionDescription{Kind: wire.SDPAnswer, SDP: "v=0 answer"}, nil
}

func (e *fakeEngine) SetRemoteDescription(wire.SessionDescription) error { return nil }
func (e *fakeEngine) AddICECandidate(string) error                       { return nil }
func (e *fakeEngine) Close() error                                       { return nil }

// recListener records controller events onto channels.
type recListener struct {
	sids       chan [2]string
	mutes      chan [2]any
	remoteMute chan [2]any
	subscribed chan *track.RemoteTrack
	unsub      chan string
	pubErrs    chan error
	states     chan signaling.TransportState
	discs      chan error
}

func newRecListener() *recListener {
	return &recListener{
		sids:       make(chan [2]string, 8),
		mutes:      make(chan [2]any, 8),
		remoteMute: make(chan [2]any, 8),
		subscribed: make(chan *track.RemoteTrack, 8),
		unsub:      make(chan string, 8),
		pubErrs:    make(chan error, 8),
		states:     make(chan signaling.TransportState, 8),
		discs:      make(chan error, 8),
	}
}

func (l *recListener) OnConnectionStateChanged(s signaling.TransportState) { l.states <- s }
func (l *recListener) OnSIDChanged(cid, sid string)                        { l.sids <- [2]string{cid, sid} }
func (l *recListener) OnMuteChanged(sid string, muted bool)                { l.mutes <- [2]any{sid, muted} }
func (l *recListener) OnRemoteSideMuteChanged(sid string, muted bool)      { l.remoteMute <- [2]any{sid, muted} }
func (l *recListener) OnTrackSubscribed(t *track.RemoteTrack)              { l.subscribed <- t }
func (l *recListener) OnTrackUnsubscribed(sid string)                      { l.unsub <- sid }
func (l *recListener) OnPublishError(err error)                            { l.pubErrs <- err }
func (l *recListener) OnTransportError(err error)                          {}
func (l *recListener) OnDisconnected(err error)                            { l.discs <- err }

type testHarness struct {
	queue      *fanout.Queue
	signaler   *fakeSignaler
	publisher  *fakeEngine
	subscriber *fakeEngine
	controller *Controller
	listener   *recListener
	handle     *fanout.Handle[Listener]
}

func newHarness(t *testing.T, config *Config) *testHarness {
	t.Helper()
	h := &testHarness{
		queue:      fanout.NewQueue(),
		signaler:   newFakeSignaler(),
		publisher:  newFakeEngine(),
		subscriber: newFakeEngine(),
		listener:   newRecListener(),
	}
	if config == nil {
		config = DefaultConfig()
		config.AutoReconnect = false
	}
	h.controller = New(h.queue, h.signaler, h.publisher, h.subscriber, config)
	h.handle = h.controller.AddListener(h.listener)
	t.Cleanup(h.queue.Close)
	return h
}

func TestPublish_ResolvesSIDFromTrackPublished(t *testing.T) {
	h := newHarness(t, nil)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	h.signaler.mu.Lock()
	if len(h.signaler.addTracks) != 1 {
		h.signaler.mu.Unlock()
		t.Fatalf("addTracks = %d, want 1", len(h.signaler.addTracks))
	}
	req := h.signaler.addTracks[0]
	h.signaler.mu.Unlock()

	if req.CID != mic.CID() || req.Kind != wire.TrackKindAudio || req.Source != wire.TrackSourceMicrophone || req.Muted {
		t.Errorf("AddTrackRequest = %+v, want cid=%s audio microphone unmuted", req, mic.CID())
	}

	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID:   mic.CID(),
		Track: wire.TrackInfo{SID: "TA1", Kind: wire.TrackKindAudio},
	})

	select {
	case got := <-h.listener.sids:
		if got[0] != mic.CID() || got[1] != "TA1" {
			t.Errorf("OnSIDChanged(%q, %q), want (%q, TA1)", got[0], got[1], mic.CID())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnSIDChanged")
	}

	if mic.SID() != "TA1" {
		t.Errorf("SID = %q, want TA1", mic.SID())
	}
	if s := mic.Sender(); s == nil || s.LocalID() != mic.CID() {
		t.Error("sender not bound with local id equal to CID")
	}
}

func TestPublish_CidMismatchReleasesSender(t *testing.T) {
	h := newHarness(t, nil)
	h.publisher.senderID = "not-the-cid"

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	err := h.controller.Publish(mic)

	var pubErr *sdkerrors.PublishError
	if !errors.As(err, &pubErr) || pubErr.Kind != sdkerrors.PublishCidMismatch {
		t.Fatalf("err = %v, want PublishError{CidMismatch}", err)
	}
	if mic.IsPublished() {
		t.Error("track must remain unpublished after a cid mismatch")
	}

	h.publisher.mu.Lock()
	defer h.publisher.mu.Unlock()
	if len(h.publisher.removed) != 1 {
		t.Errorf("removed = %d senders, want 1", len(h.publisher.removed))
	}
}

func TestPublish_RejectsEncryptionMismatch(t *testing.T) {
	config := DefaultConfig()
	config.AutoReconnect = false
	config.Encryption = track.EncryptionGcm
	h := newHarness(t, config)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err == nil {
		t.Fatal("expected publish to fail when track encryption differs from room encryption")
	}
}

func TestMute_IdempotentOnWireAndListener(t *testing.T) {
	h := newHarness(t, nil)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID:   mic.CID(),
		Track: wire.TrackInfo{SID: "TA1", Kind: wire.TrackKindAudio},
	})
	<-h.listener.sids

	if err := h.controller.Mute(mic.CID(), true); err != nil {
		t.Fatalf("Mute: %v", err)
	}
	if err := h.controller.Mute(mic.CID(), true); err != nil {
		t.Fatalf("second Mute: %v", err)
	}

	select {
	case got := <-h.listener.mutes:
		if got[0].(string) != "TA1" || got[1].(bool) != true {
			t.Errorf("OnMuteChanged(%v, %v), want (TA1, true)", got[0], got[1])
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnMuteChanged")
	}
	select {
	case <-h.listener.mutes:
		t.Fatal("second identical Mute produced a second notification")
	case <-time.After(100 * time.Millisecond):
	}

	if got := h.signaler.muteCount(); got != 1 {
		t.Errorf("MuteTrackRequests on the wire = %d, want 1", got)
	}
	h.publisher.mu.Lock()
	defer h.publisher.mu.Unlock()
	if !h.publisher.disabled[mic.CID()] {
		t.Error("outbound sender was not disabled")
	}
}

func TestSubscribe_InfoThenReceiver(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID: "someone-elses-cid",
		Track: wire.TrackInfo{
			SID: "TR1", Name: "cam", Kind: wire.TrackKindVideo,
			Source: wire.TrackSourceCamera, Muted: true,
		},
	})
	h.controller.HandleReceiverAdded(&fakeReceiver{id: "TR1"})

	select {
	case rt := <-h.listener.subscribed:
		if rt.SID() != "TR1" || rt.Kind() != track.KindVideo || rt.Source() != track.SourceCamera {
			t.Errorf("remote track = %s/%v/%v, want TR1/video/camera", rt.SID(), rt.Kind(), rt.Source())
		}
		if !rt.Muted() {
			t.Error("muted on arrival must be the server-reported value")
		}
		if rt.Receiver() == nil || rt.Receiver().ID() != "TR1" {
			t.Error("receiver not bound")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnTrackSubscribed")
	}
}

func TestSubscribe_ReceiverThenInfo(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.HandleReceiverAdded(&fakeReceiver{id: "TR2"})
	// Let the queue process the pending receiver before the info lands.
	time.Sleep(50 * time.Millisecond)
	h.controller.OnParticipantUpdate(&wire.ParticipantUpdate{
		Participants: []wire.ParticipantInfo{{
			SID:      "P2",
			Identity: "bob",
			Tracks:   []wire.TrackInfo{{SID: "TR2", Kind: wire.TrackKindAudio, Source: wire.TrackSourceMicrophone}},
		}},
	})

	select {
	case rt := <-h.listener.subscribed:
		if rt.SID() != "TR2" {
			t.Errorf("SID = %q, want TR2", rt.SID())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnTrackSubscribed")
	}
}

func TestParticipantDisconnect_DropsItsTracks(t *testing.T) {
	h := newHarness(t, nil)

	info := wire.ParticipantInfo{
		SID:    "P2",
		Tracks: []wire.TrackInfo{{SID: "TR3", Kind: wire.TrackKindAudio}},
	}
	h.controller.OnParticipantUpdate(&wire.ParticipantUpdate{Participants: []wire.ParticipantInfo{info}})
	h.controller.HandleReceiverAdded(&fakeReceiver{id: "TR3"})
	<-h.listener.subscribed

	gone := info
	gone.State = wire.ParticipantDisconnected
	h.controller.OnParticipantUpdate(&wire.ParticipantUpdate{Participants: []wire.ParticipantInfo{gone}})

	select {
	case sid := <-h.listener.unsub:
		if sid != "TR3" {
			t.Errorf("OnTrackUnsubscribed(%q), want TR3", sid)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnTrackUnsubscribed")
	}
	if len(h.controller.RemoteTracks()) != 0 {
		t.Error("remote arena not emptied after participant disconnect")
	}
}

func TestDisconnectBeforeAck_UnbindsAndSurfacesTimeout(t *testing.T) {
	h := newHarness(t, nil)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	h.controller.OnStateChanged(signaling.StateDisconnected)

	select {
	case err := <-h.listener.pubErrs:
		var pubErr *sdkerrors.PublishError
		if !errors.As(err, &pubErr) || pubErr.Kind != sdkerrors.PublishTimeout {
			t.Errorf("err = %v, want PublishError{Timeout}", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnPublishError")
	}

	if mic.IsPublished() || mic.SID() != "" {
		t.Error("track must be unbound after disconnect, keeping only its CID")
	}
	if mic.CID() == "" {
		t.Error("CID must survive the disconnect")
	}
}

func TestRemoteSideMute_OfLocalTrack(t *testing.T) {
	h := newHarness(t, nil)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID:   mic.CID(),
		Track: wire.TrackInfo{SID: "TA1", Kind: wire.TrackKindAudio},
	})
	<-h.listener.sids

	h.controller.OnMute(&wire.MuteTrackRequest{SID: "TA1", Muted: true})

	select {
	case got := <-h.listener.remoteMute:
		if got[0].(string) != "TA1" || got[1].(bool) != true {
			t.Errorf("OnRemoteSideMuteChanged(%v, %v), want (TA1, true)", got[0], got[1])
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnRemoteSideMuteChanged")
	}
	if !mic.RemoteSideMute() {
		t.Error("remote-side mute flag not recorded")
	}
}

func TestQuickReconnect_UsesParticipantSIDAndKeepsTrackSIDs(t *testing.T) {
	config := DefaultConfig()
	config.MaxReconnectAttempts = 1
	config.ReconnectDelay = 10 * time.Millisecond
	h := newHarness(t, config)

	h.controller.OnJoin(&wire.JoinResponse{Participant: wire.ParticipantInfo{SID: "P1"}})

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID:   mic.CID(),
		Track: wire.TrackInfo{SID: "TA1", Kind: wire.TrackKindAudio},
	})
	<-h.listener.sids

	h.controller.OnStateChanged(signaling.StateDisconnected)

	deadline := time.After(2 * time.Second)
	for {
		h.signaler.mu.Lock()
		n := len(h.signaler.connects)
		h.signaler.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the reconnect attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}

	h.signaler.mu.Lock()
	params := h.signaler.connects[0]
	addTracks := len(h.signaler.addTracks)
	h.signaler.mu.Unlock()

	if params.ParticipantSID != "P1" {
		t.Errorf("reconnect ParticipantSID = %q, want P1", params.ParticipantSID)
	}
	if mic.SID() != "TA1" {
		t.Errorf("SID = %q, want TA1 preserved across quick reconnect", mic.SID())
	}
	if addTracks != 1 {
		t.Errorf("AddTrack count = %d, want 1 (no re-publish on quick reconnect)", addTracks)
	}
}

func TestFatalTransportError_ForbidsReconnectAndCleansUp(t *testing.T) {
	config := DefaultConfig()
	h := newHarness(t, config)

	h.controller.OnJoin(&wire.JoinResponse{Participant: wire.ParticipantInfo{SID: "P1"}})

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	h.controller.OnTransportError(&sdkerrors.FatalError{Kind: sdkerrors.FatalAuth, Err: fmt.Errorf("401")})
	h.controller.OnStateChanged(signaling.StateDisconnected)

	select {
	case <-h.listener.discs:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnDisconnected")
	}

	h.signaler.mu.Lock()
	defer h.signaler.mu.Unlock()
	if len(h.signaler.connects) != 0 {
		t.Error("auto-reconnect must be forbidden after a fatal error")
	}
	if mic.IsPublished() {
		t.Error("senders must be released on fatal cleanup")
	}
}

func TestOnOffer_AnswersOverSignaling(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.OnOffer(&wire.SessionDescription{Kind: wire.SDPOffer, SDP: "v=0 server offer"})

	deadline := time.After(time.Second)
	for {
		h.signaler.mu.Lock()
		n := len(h.signaler.answers)
		h.signaler.mu.Unlock()
		if n == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the answer")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOnReconnectResponse_SyncsPublishedState(t *testing.T) {
	h := newHarness(t, nil)

	mic := track.NewLocalTrack("mic", track.KindAudio, track.SourceMicrophone, track.EncryptionNone)
	if err := h.controller.Publish(mic); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	h.controller.OnTrackPublished(&wire.TrackPublished{
		CID:   mic.CID(),
		Track: wire.TrackInfo{SID: "TA1", Kind: wire.TrackKindAudio},
	})
	<-h.listener.sids

	h.controller.OnReconnectResponse(&wire.ReconnectResponse{})

	h.signaler.mu.Lock()
	defer h.signaler.mu.Unlock()
	if len(h.signaler.syncs) != 1 {
		t.Fatalf("syncs = %d, want 1", len(h.signaler.syncs))
	}
	if got := h.signaler.syncs[0].PublishedCIDs; len(got) != 1 || got[0] != mic.CID() {
		t.Errorf("PublishedCIDs = %v, want [%s]", got, mic.CID())
	}
}
