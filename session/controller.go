/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package session implements the media session controller: it consumes
// server messages from the signaling engine and publish/subscribe/mute
// intent from the application, drives the media-engine collaborator, and
// owns the track model.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	sdkerrors "github.com/nexusrtc/client-go/errors"
	"github.com/nexusrtc/client-go/fanout"
	"github.com/nexusrtc/client-go/signaling"
	"github.com/nexusrtc/client-go/signaling/wire"
	"github.com/nexusrtc/client-go/track"
)

// Logger is the controller's logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Signaler is the slice of the signaling engine the controller drives.
// *signaling.SignalingEngine satisfies it; tests substitute a fake.
type Signaler interface {
	Connect(params signaling.ConnectionParams, info signaling.ClientInfo) bool
	Disconnect()
	State() signaling.TransportState
	SendOffer(wire.SessionDescription) bool
	SendAnswer(wire.SessionDescription) bool
	SendTrickle(wire.TrickleRequest) bool
	SendAddTrack(wire.AddTrackRequest) bool
	SendMute(wire.MuteTrackRequest) bool
	SendLeave(wire.LeaveRequest) bool
	SendSyncState(wire.SyncStateRequest) bool
}

// MediaEngine is the collaborator interface of one peer connection, the
// add_track/remove_track/offer/answer surface the controller calls into.
// mediaengine.PeerConnection is adapted to it by the room package; tests
// substitute a fake.
type MediaEngine interface {
	AddTrack(kind track.Kind, localID string) (track.Sender, error)
	RemoveTrack(s track.Sender) error
	SetSenderEnabled(s track.Sender, enabled bool) error
	CreateOffer() (wire.SessionDescription, error)
	CreateAnswer() (wire.SessionDescription, error)
	SetRemoteDescription(sd wire.SessionDescription) error
	AddICECandidate(candidateInit string) error
	Close() error
}

// Listener observes the controller's application-facing events. All methods
// are invoked on the event task queue.
type Listener interface {
	OnConnectionStateChanged(state signaling.TransportState)
	OnSIDChanged(cid, sid string)
	OnMuteChanged(sid string, muted bool)
	OnRemoteSideMuteChanged(sid string, muted bool)
	OnTrackSubscribed(t *track.RemoteTrack)
	OnTrackUnsubscribed(sid string)
	OnPublishError(err error)
	OnTransportError(err error)
	OnDisconnected(err error)
}

// Config configures a Controller.
type Config struct {
	Logger Logger

	// Encryption is the room-level encryption mode every published track
	// must carry at publish time.
	Encryption track.EncryptionMode

	// AutoReconnect enables the quick-reconnect policy on a non-fatal
	// transport drop.
	AutoReconnect        bool
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
}

// DefaultConfig returns the controller defaults: auto-reconnect on, three
// attempts, two-second initial backoff.
func DefaultConfig() *Config {
	return &Config{
		Logger:               log.Default(),
		AutoReconnect:        true,
		MaxReconnectAttempts: 3,
		ReconnectDelay:       2 * time.Second,
	}
}

// Controller is the media session controller. It acts as the signaling
// engine's transport and server listener, keeps the local and remote track
// arenas, and resolves publishes against server acks.
type Controller struct {
	logger Logger
	cfg    Config

	queue     *fanout.Queue
	signaler  Signaler
	listeners *fanout.Registry[Listener]

	publisher  MediaEngine
	subscriber MediaEngine

	local  *track.LocalArena
	remote *track.RemoteArena

	// publishSF collapses concurrent Publish calls for the same CID: only
	// one AddTrack resolution per CID is ever in flight.
	publishSF   singleflight.Group
	reconnector *Reconnector

	mu               sync.Mutex
	params           signaling.ConnectionParams
	info             signaling.ClientInfo
	participantSID   string
	pendingPublish   map[string]track.ID      // cid -> arena id, awaiting server SID
	pendingInfo      map[string]wire.TrackInfo // sid -> TrackInfo, awaiting receiver
	pendingReceivers map[string]track.Receiver // sid -> receiver, awaiting TrackInfo
	participants     map[string]wire.ParticipantInfo
	lastErr          error
	userClosed       bool
	noReconnect      bool
	reconnecting     bool
	parseErrors      uint64
}

// New creates a Controller sharing the given event task queue with its
// signaling engine. publisher and subscriber are the two peer-connection
// collaborators of the room.
func New(queue *fanout.Queue, signaler Signaler, publisher, subscriber MediaEngine, config *Config) *Controller {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Controller{
		logger:           config.Logger,
		cfg:              *config,
		queue:            queue,
		signaler:         signaler,
		listeners:        fanout.NewRegistry[Listener](),
		publisher:        publisher,
		subscriber:       subscriber,
		local:            track.NewLocalArena(),
		remote:           track.NewRemoteArena(),
		pendingPublish:   make(map[string]track.ID),
		pendingInfo:      make(map[string]wire.TrackInfo),
		pendingReceivers: make(map[string]track.Receiver),
		participants:     make(map[string]wire.ParticipantInfo),
	}
	c.reconnector = newReconnector(config.Logger, config.MaxReconnectAttempts, config.ReconnectDelay)
	return c
}

// AddListener subscribes l to controller events. The returned handle must be
// retained for the subscription to stay alive.
func (c *Controller) AddListener(l Listener) *fanout.Handle[Listener] {
	return c.listeners.Add(l)
}

// RemoveListener unsubscribes a previously added handle.
func (c *Controller) RemoveListener(h *fanout.Handle[Listener]) {
	c.listeners.Remove(h)
}

// Connect snapshots the connection parameters and drives the signaling
// engine. Returns false if the engine rejects the preconditions.
func (c *Controller) Connect(params signaling.ConnectionParams, info signaling.ClientInfo) bool {
	c.mu.Lock()
	c.params = params
	c.info = info
	c.userClosed = false
	c.noReconnect = false
	c.mu.Unlock()
	return c.signaler.Connect(params, info)
}

// Disconnect performs a graceful leave: a LeaveRequest on the wire, release
// of every local sender, then the transport close. Pending publishes resolve
// to not-acknowledged.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	c.userClosed = true
	c.mu.Unlock()

	c.signaler.SendLeave(wire.LeaveRequest{Reason: wire.LeaveClientRequest, CanReconnect: false})
	c.releaseSenders()
	c.signaler.Disconnect()
}

// ParticipantSID returns the server-issued participant SID from the current
// session's JoinResponse, or "" before join.
func (c *Controller) ParticipantSID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.participantSID
}

// LocalTracks returns a snapshot of the local track arena.
func (c *Controller) LocalTracks() []*track.LocalTrack { return c.local.All() }

// RemoteTracks returns a snapshot of the remote track arena.
func (c *Controller) RemoteTracks() []*track.RemoteTrack { return c.remote.All() }

// Participants returns a snapshot of the current room roster.
func (c *Controller) Participants() []wire.ParticipantInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]wire.ParticipantInfo, 0, len(c.participants))
	for _, p := range c.participants {
		out = append(out, p)
	}
	return out
}

// ParseErrors returns the count of inbound frames dropped for decode
// failures.
func (c *Controller) ParseErrors() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parseErrors
}

// Publish announces a local track to the room: add the media to the
// publisher peer connection, announce it with an AddTrackRequest, and leave
// the SID binding to the server's TrackPublished ack. Concurrent calls for
// the same CID collapse to one attempt.
func (c *Controller) Publish(t *track.LocalTrack) error {
	_, err, _ := c.publishSF.Do(t.CID(), func() (any, error) {
		return nil, c.publish(t)
	})
	return err
}

func (c *Controller) publish(t *track.LocalTrack) error {
	if c.signaler.State() != signaling.StateConnected {
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishTrackNotAccepted, CID: t.CID(),
			Err: fmt.Errorf("session: not connected")}
	}
	if t.Encryption() != c.cfg.Encryption {
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishTrackNotAccepted, CID: t.CID(),
			Err: fmt.Errorf("session: track encryption %v does not match room encryption %v", t.Encryption(), c.cfg.Encryption)}
	}
	if t.IsPublished() {
		return nil
	}

	cid := t.CID()
	sender, err := c.publisher.AddTrack(t.Kind(), cid)
	if err != nil {
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishTrackNotAccepted, CID: cid, Err: err}
	}
	if sender.LocalID() != cid {
		_ = c.publisher.RemoveTrack(sender)
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishCidMismatch, CID: cid,
			Err: fmt.Errorf("session: sender local id %q != cid %q", sender.LocalID(), cid)}
	}

	id, ok := c.local.IDByCID(cid)
	if !ok {
		id = c.local.Add(t)
	}
	if err := c.local.BindSender(id, sender); err != nil {
		_ = c.publisher.RemoveTrack(sender)
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishTrackNotAccepted, CID: cid, Err: err}
	}

	c.mu.Lock()
	c.pendingPublish[cid] = id
	c.mu.Unlock()

	var hints track.VideoHints
	if t.Kind() == track.KindVideo {
		hints = t.VideoHints()
	}
	sent := c.signaler.SendAddTrack(wire.AddTrackRequest{
		CID:        cid,
		Name:       t.Name(),
		Kind:       wireKind(t.Kind()),
		Width:      hints.Width,
		Height:     hints.Height,
		Source:     wireSource(t.Source()),
		Muted:      t.Muted(),
		Encryption: wireEncryption(t.Encryption()),
	})
	if !sent {
		c.mu.Lock()
		delete(c.pendingPublish, cid)
		c.mu.Unlock()
		_ = c.publisher.RemoveTrack(sender)
		_ = c.local.Unbind(id)
		return &sdkerrors.PublishError{Kind: sdkerrors.PublishTrackNotAccepted, CID: cid,
			Err: fmt.Errorf("session: add track send failed")}
	}

	go c.negotiate()
	return nil
}

// Unpublish removes a local track's sender from the publisher connection and
// returns the track to the unpublished state. The CID is preserved.
func (c *Controller) Unpublish(cid string) error {
	t, ok := c.local.ByCID(cid)
	if !ok {
		return track.ErrNotFound
	}
	if s := t.Sender(); s != nil {
		_ = c.publisher.RemoveTrack(s)
	}
	c.mu.Lock()
	delete(c.pendingPublish, cid)
	c.mu.Unlock()
	if err := c.local.UnbindByCID(cid); err != nil {
		return err
	}
	go c.negotiate()
	return nil
}

// Mute flips a local track's mute flag. Applying the same value twice
// produces exactly one listener notification and one MuteTrackRequest on the
// wire. The outbound sender is disabled/enabled at the media engine.
func (c *Controller) Mute(cid string, muted bool) error {
	t, ok := c.local.ByCID(cid)
	if !ok {
		return track.ErrNotFound
	}
	changed, err := c.local.SetMutedByCID(cid, muted)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if s := t.Sender(); s != nil {
		if err := c.publisher.SetSenderEnabled(s, !muted); err != nil {
			c.logger.Printf("session: set sender enabled for %s: %v", cid, err)
		}
	}
	if sid := t.SID(); sid != "" {
		c.signaler.SendMute(wire.MuteTrackRequest{SID: sid, Muted: muted})
		c.listeners.Notify(c.queue, func(l Listener) { l.OnMuteChanged(sid, muted) })
	}
	return nil
}

// negotiate runs one offer round on the publisher connection. CreateOffer
// blocks on ICE gathering, so it always runs off the event task queue.
func (c *Controller) negotiate() {
	offer, err := c.publisher.CreateOffer()
	if err != nil {
		c.logger.Printf("session: create offer: %v", err)
		return
	}
	c.signaler.SendOffer(offer)
}

// HandleLocalCandidate forwards a locally gathered ICE candidate as a
// trickle, tagged with the peer connection it belongs to. Wired to the media
// engines' on_ice_candidate callbacks by the room.
func (c *Controller) HandleLocalCandidate(target wire.TrickleTarget, candidateInit string, final bool) {
	c.signaler.SendTrickle(wire.TrickleRequest{CandidateInit: candidateInit, Target: target, Final: final})
}

// HandleReceiverAdded runs the receiver half of the subscribe path: if the
// server's TrackInfo for this SID already arrived, the remote track is
// constructed and bound; otherwise the receiver waits in the pending map.
// Wired to the subscriber engine's on_receiver_added callback by the room.
func (c *Controller) HandleReceiverAdded(r track.Receiver) {
	c.queue.Post(func() {
		sid := r.ID()
		c.mu.Lock()
		info, ok := c.pendingInfo[sid]
		if ok {
			delete(c.pendingInfo, sid)
		} else {
			c.pendingReceivers[sid] = r
		}
		c.mu.Unlock()
		if ok {
			c.bindRemote(info, r)
		}
	})
}

func (c *Controller) bindRemote(info wire.TrackInfo, r track.Receiver) {
	rt := track.NewRemoteTrack(info.SID, info.Name, trackKind(info.Kind), trackSource(info.Source),
		trackEncryption(info.Encryption), info.Muted)
	id := c.remote.Add(rt)
	if err := c.remote.BindReceiver(id, r); err != nil {
		c.logger.Printf("session: bind receiver %s: %v", info.SID, err)
		return
	}
	c.listeners.Notify(c.queue, func(l Listener) { l.OnTrackSubscribed(rt) })
}

// recordRemoteInfo runs the TrackInfo half of the subscribe path, and doubles
// as the remote-mute update path for tracks already subscribed.
func (c *Controller) recordRemoteInfo(info wire.TrackInfo) {
	if id, ok := c.remote.IDBySID(info.SID); ok {
		changed, err := c.remote.SetMuted(id, info.Muted)
		if err == nil && changed {
			sid, muted := info.SID, info.Muted
			c.listeners.Notify(c.queue, func(l Listener) { l.OnRemoteSideMuteChanged(sid, muted) })
		}
		return
	}

	c.mu.Lock()
	r, ok := c.pendingReceivers[info.SID]
	if ok {
		delete(c.pendingReceivers, info.SID)
	} else {
		c.pendingInfo[info.SID] = info
	}
	c.mu.Unlock()
	if ok {
		c.bindRemote(info, r)
	}
}

// releaseSenders drops every local track's sender binding and SID, keeping
// CIDs and arena membership, and fails any pending publish as
// not-acknowledged.
func (c *Controller) releaseSenders() {
	c.mu.Lock()
	pending := c.pendingPublish
	c.pendingPublish = make(map[string]track.ID)
	c.mu.Unlock()

	for cid := range pending {
		err := &sdkerrors.PublishError{Kind: sdkerrors.PublishTimeout, CID: cid,
			Err: fmt.Errorf("session: disconnected before server acknowledged AddTrack")}
		c.listeners.Notify(c.queue, func(l Listener) { l.OnPublishError(err) })
	}

	for _, t := range c.local.All() {
		if s := t.Sender(); s != nil {
			_ = c.publisher.RemoveTrack(s)
		}
		_ = c.local.UnbindByCID(t.CID())
	}
}

// cleanup tears the session down after a terminal disconnect: senders are
// released, remote tracks and pendings are cleared, and listeners see
// OnDisconnected.
func (c *Controller) cleanup(err error) {
	c.releaseSenders()

	for _, rt := range c.remote.All() {
		if id, ok := c.remote.IDBySID(rt.SID()); ok {
			c.remote.Remove(id)
		}
	}

	c.mu.Lock()
	c.pendingInfo = make(map[string]wire.TrackInfo)
	c.pendingReceivers = make(map[string]track.Receiver)
	c.participants = make(map[string]wire.ParticipantInfo)
	c.participantSID = ""
	c.mu.Unlock()

	c.listeners.Notify(c.queue, func(l Listener) { l.OnDisconnected(err) })
}

var (
	_ signaling.TransportListener = (*Controller)(nil)
	_ signaling.ServerListener    = (*Controller)(nil)
)

// OnStateChanged implements signaling.TransportListener: it forwards the
// transition and, on a terminal Disconnected, decides between quick
// reconnect and cleanup.
func (c *Controller) OnStateChanged(s signaling.TransportState) {
	c.listeners.Notify(c.queue, func(l Listener) { l.OnConnectionStateChanged(s) })

	if s != signaling.StateDisconnected {
		return
	}

	c.mu.Lock()
	closed := c.userClosed
	forbidden := c.noReconnect
	sid := c.participantSID
	lastErr := c.lastErr
	alreadyReconnecting := c.reconnecting
	canReconnect := c.cfg.AutoReconnect && !forbidden && !closed && sid != ""
	if canReconnect {
		c.reconnecting = true
	}
	c.mu.Unlock()

	// Disconnected events raised by the reconnector's own failed attempts
	// must not spawn further attempts; the running loop owns the retries.
	if alreadyReconnecting {
		return
	}
	if closed {
		c.cleanup(nil)
		return
	}
	if canReconnect {
		go func() {
			err := c.reconnector.Run(c)
			c.mu.Lock()
			c.reconnecting = false
			c.mu.Unlock()
			if err != nil {
				c.logger.Printf("session: %v", err)
				c.cleanup(lastErr)
			}
		}()
		return
	}
	c.cleanup(lastErr)
}

// OnTransportError implements signaling.TransportListener. A FatalError
// forbids auto-reconnect; everything else is recorded for the disconnect
// handler.
func (c *Controller) OnTransportError(err error) {
	var fatal *sdkerrors.FatalError
	c.mu.Lock()
	c.lastErr = err
	if errors.As(err, &fatal) {
		c.noReconnect = true
	}
	c.mu.Unlock()

	c.listeners.Notify(c.queue, func(l Listener) { l.OnTransportError(err) })
}

// OnJoin implements signaling.ServerListener.
func (c *Controller) OnJoin(j *wire.JoinResponse) {
	c.mu.Lock()
	c.participantSID = j.Participant.SID
	for _, p := range j.OtherParticipants {
		c.participants[p.SID] = p
	}
	c.mu.Unlock()

	for _, p := range j.OtherParticipants {
		for _, ti := range p.Tracks {
			c.recordRemoteInfo(ti)
		}
	}
}

// OnOffer implements signaling.ServerListener: the server's offer drives the
// subscriber connection, which answers back over signaling.
func (c *Controller) OnOffer(sd *wire.SessionDescription) {
	offer := *sd
	go func() {
		if err := c.subscriber.SetRemoteDescription(offer); err != nil {
			c.logger.Printf("session: set remote offer: %v", err)
			return
		}
		answer, err := c.subscriber.CreateAnswer()
		if err != nil {
			c.logger.Printf("session: create answer: %v", err)
			return
		}
		c.signaler.SendAnswer(answer)
	}()
}

// OnAnswer implements signaling.ServerListener: the server's answer
// completes a publisher offer round.
func (c *Controller) OnAnswer(sd *wire.SessionDescription) {
	answer := *sd
	go func() {
		if err := c.publisher.SetRemoteDescription(answer); err != nil {
			c.logger.Printf("session: set remote answer: %v", err)
		}
	}()
}

// OnTrickle implements signaling.ServerListener, routing the candidate to
// the peer connection its target names.
func (c *Controller) OnTrickle(t *wire.TrickleRequest) {
	engine := c.subscriber
	if t.Target == wire.TargetPublisher {
		engine = c.publisher
	}
	candidate := t.CandidateInit
	go func() {
		if err := engine.AddICECandidate(candidate); err != nil {
			c.logger.Printf("session: add ice candidate: %v", err)
		}
	}()
}

// OnParticipantUpdate implements signaling.ServerListener: roster entries
// are upserted, departed participants' remote tracks are dropped.
func (c *Controller) OnParticipantUpdate(u *wire.ParticipantUpdate) {
	for _, p := range u.Participants {
		if p.State == wire.ParticipantDisconnected {
			c.dropParticipant(p.SID)
			continue
		}
		c.mu.Lock()
		c.participants[p.SID] = p
		c.mu.Unlock()
		for _, ti := range p.Tracks {
			c.recordRemoteInfo(ti)
		}
	}
}

func (c *Controller) dropParticipant(participantSID string) {
	c.mu.Lock()
	prev, ok := c.participants[participantSID]
	delete(c.participants, participantSID)
	c.mu.Unlock()
	if !ok {
		return
	}
	for _, ti := range prev.Tracks {
		c.removeRemote(ti.SID)
	}
}

func (c *Controller) removeRemote(sid string) {
	c.mu.Lock()
	delete(c.pendingInfo, sid)
	delete(c.pendingReceivers, sid)
	c.mu.Unlock()

	id, ok := c.remote.IDBySID(sid)
	if !ok {
		return
	}
	c.remote.Remove(id)
	c.listeners.Notify(c.queue, func(l Listener) { l.OnTrackUnsubscribed(sid) })
}

// OnTrackPublished implements signaling.ServerListener. A CID matching a
// pending local publish resolves it; any other TrackInfo is a remote
// publication feeding the subscribe path.
func (c *Controller) OnTrackPublished(tp *wire.TrackPublished) {
	c.mu.Lock()
	id, pending := c.pendingPublish[tp.CID]
	if pending {
		delete(c.pendingPublish, tp.CID)
	}
	c.mu.Unlock()

	if !pending {
		c.recordRemoteInfo(tp.Track)
		return
	}

	if err := c.local.BindSID(id, tp.Track.SID); err != nil {
		c.logger.Printf("session: bind sid %s: %v", tp.Track.SID, err)
		return
	}
	cid, sid := tp.CID, tp.Track.SID
	c.listeners.Notify(c.queue, func(l Listener) { l.OnSIDChanged(cid, sid) })
}

// OnTrackUnpublished implements signaling.ServerListener.
func (c *Controller) OnTrackUnpublished(tu *wire.TrackUnpublished) {
	c.removeRemote(tu.TrackSID)
}

// OnTrackSubscribed implements signaling.ServerListener. The receiver-side
// binding is driven by HandleReceiverAdded; this ack needs no action beyond
// the log line.
func (c *Controller) OnTrackSubscribed(ts *wire.TrackSubscribed) {
	c.logger.Printf("session: subscription confirmed for %s", ts.TrackSID)
}

// OnMute implements signaling.ServerListener: a server-observed mute of one
// of this session's local tracks (a moderator action), or of a subscribed
// remote track.
func (c *Controller) OnMute(m *wire.MuteTrackRequest) {
	if changed, err := c.local.SetRemoteSideMuteBySID(m.SID, m.Muted); err == nil {
		if changed {
			sid, muted := m.SID, m.Muted
			c.listeners.Notify(c.queue, func(l Listener) { l.OnRemoteSideMuteChanged(sid, muted) })
		}
		return
	}

	if id, ok := c.remote.IDBySID(m.SID); ok {
		changed, err := c.remote.SetMuted(id, m.Muted)
		if err == nil && changed {
			sid, muted := m.SID, m.Muted
			c.listeners.Notify(c.queue, func(l Listener) { l.OnRemoteSideMuteChanged(sid, muted) })
		}
	}
}

// OnLeave implements signaling.ServerListener: the server ended the session.
func (c *Controller) OnLeave(l *wire.LeaveRequest) {
	c.mu.Lock()
	if !l.CanReconnect {
		c.noReconnect = true
	}
	c.mu.Unlock()
	c.signaler.Disconnect()
}

// OnReconnectResponse implements signaling.ServerListener: a quick reconnect
// completed, so the session state is replayed with a SyncState instead of a
// fresh AddTrack per published track.
func (c *Controller) OnReconnectResponse(*wire.ReconnectResponse) {
	var cids []string
	for _, t := range c.local.All() {
		if t.SID() != "" {
			cids = append(cids, t.CID())
		}
	}
	var sids []string
	for _, rt := range c.remote.All() {
		sids = append(sids, rt.SID())
	}
	c.signaler.SendSyncState(wire.SyncStateRequest{
		Subscription:  wire.SubscriptionRequest{TrackSIDs: sids, Subscribe: true},
		PublishedCIDs: cids,
	})
}

// OnRefreshToken implements signaling.ServerListener: the renewed token is
// used on the next reconnect.
func (c *Controller) OnRefreshToken(r *wire.RefreshToken) {
	c.mu.Lock()
	c.params.AuthToken = r.Token
	c.mu.Unlock()
}

// OnRequestResponse implements signaling.ServerListener.
func (c *Controller) OnRequestResponse(r *wire.RequestResponse) {
	if r.Reason != wire.RequestOK {
		c.logger.Printf("session: request %d rejected: %s (%d)", r.RequestID, r.Message, r.Reason)
	}
}

// OnSubscriptionResponse implements signaling.ServerListener.
func (c *Controller) OnSubscriptionResponse(s *wire.SubscriptionResponse) {
	if s.Err != "" {
		c.logger.Printf("session: subscription failed for %v: %s", s.TrackSIDs, s.Err)
	}
}

// OnServerResponseParseError implements signaling.ServerListener: the frame
// was dropped by the codec; count it and keep the connection up.
func (c *Controller) OnServerResponseParseError(err error) {
	c.mu.Lock()
	c.parseErrors++
	c.mu.Unlock()
	c.logger.Printf("session: dropped undecodable server frame: %v", err)
}

// The remaining server messages carry telemetry the controller has no state
// transition for; applications observe them through their own ServerListener.
func (c *Controller) OnConnectionQuality(*wire.ConnectionQualityUpdate)              {}
func (c *Controller) OnRoomUpdate(*wire.RoomUpdateInfo)                              {}
func (c *Controller) OnSpeakersChanged(*wire.SpeakersChanged)                        {}
func (c *Controller) OnStreamStateUpdate(*wire.StreamStateUpdate)                    {}
func (c *Controller) OnSubscribedQualityUpdate(*wire.SubscribedQualityUpdate)        {}
func (c *Controller) OnSubscriptionPermissionUpdate(*wire.SubscriptionPermissionUpdate) {}
func (c *Controller) OnPong(*wire.Pong)                                              {}

// wireKind and friends translate between the track model's enums and their
// wire counterparts. The two sets are kept distinct so the codec package has
// no dependency on the track model.
func wireKind(k track.Kind) wire.TrackKind {
	if k == track.KindVideo {
		return wire.TrackKindVideo
	}
	return wire.TrackKindAudio
}

func trackKind(k wire.TrackKind) track.Kind {
	if k == wire.TrackKindVideo {
		return track.KindVideo
	}
	return track.KindAudio
}

func wireSource(s track.Source) wire.TrackSource {
	switch s {
	case track.SourceMicrophone:
		return wire.TrackSourceMicrophone
	case track.SourceCamera:
		return wire.TrackSourceCamera
	case track.SourceScreenShare:
		return wire.TrackSourceScreenShare
	case track.SourceScreenShareAudio:
		return wire.TrackSourceScreenShareAudio
	default:
		return wire.TrackSourceUnknown
	}
}

func trackSource(s wire.TrackSource) track.Source {
	switch s {
	case wire.TrackSourceMicrophone:
		return track.SourceMicrophone
	case wire.TrackSourceCamera:
		return track.SourceCamera
	case wire.TrackSourceScreenShare:
		return track.SourceScreenShare
	case wire.TrackSourceScreenShareAudio:
		return track.SourceScreenShareAudio
	default:
		return track.SourceUnknown
	}
}

func wireEncryption(e track.EncryptionMode) wire.EncryptionType {
	switch e {
	case track.EncryptionGcm:
		return wire.EncryptionGCM
	case track.EncryptionCustom:
		return wire.EncryptionCustom
	default:
		return wire.EncryptionNone
	}
}

func trackEncryption(e wire.EncryptionType) track.EncryptionMode {
	switch e {
	case wire.EncryptionGCM:
		return track.EncryptionGcm
	case wire.EncryptionCustom:
		return track.EncryptionCustom
	default:
		return track.EncryptionNone
	}
}
