/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package wire

// SDPKind distinguishes an offer from an answer description.
type SDPKind int

const (
	SDPOffer SDPKind = iota
	SDPAnswer
	SDPPranswer
	SDPRollback
)

// SessionDescription carries an SDP blob across the wire.
type SessionDescription struct {
	Kind SDPKind
	SDP  string
}

// TrickleTarget distinguishes which peer connection (publisher or
// subscriber) a trickled ICE candidate belongs to.
type TrickleTarget int

const (
	TargetPublisher TrickleTarget = iota
	TargetSubscriber
)

// TrickleRequest carries one ICE candidate, serialized as the
// RTCIceCandidateInit JSON the browser/webrtc stack produces.
type TrickleRequest struct {
	CandidateInit string
	Target        TrickleTarget
	Final         bool
}

// TrackKind mirrors track.Kind on the wire. Kept distinct from track.Kind so
// the codec package has no dependency on the track model.
type TrackKind int

const (
	TrackKindAudio TrackKind = iota
	TrackKindVideo
)

// TrackSource mirrors track.Source on the wire.
type TrackSource int

const (
	TrackSourceUnknown TrackSource = iota
	TrackSourceMicrophone
	TrackSourceCamera
	TrackSourceScreenShare
	TrackSourceScreenShareAudio
)

// EncryptionType mirrors track.EncryptionMode on the wire.
type EncryptionType int

const (
	EncryptionNone EncryptionType = iota
	EncryptionGCM
	EncryptionCustom
)

// VideoLayer describes one simulcast/SVC layer offered for a published
// video track.
type VideoLayer struct {
	Quality int32
	Width   int32
	Height  int32
	Bitrate int32
	SSRC    uint32
}

// TrackInfo is the server's canonical description of a track, returned in
// JoinResponse, TrackPublished and ParticipantUpdate.
type TrackInfo struct {
	SID        string
	Kind       TrackKind
	Name       string
	Muted      bool
	Width      int32
	Height     int32
	Simulcast  bool
	Source     TrackSource
	Layers     []VideoLayer
	Encryption EncryptionType
}

// AddTrackRequest announces a local track before its SDP offer is sent.
type AddTrackRequest struct {
	CID        string
	Name       string
	Kind       TrackKind
	Width      int32
	Height     int32
	Source     TrackSource
	Muted      bool
	Encryption EncryptionType
}

// MuteTrackRequest requests the server mute/unmute one of the sender's own
// published tracks, or notifies it a remote track's mute state changed.
type MuteTrackRequest struct {
	SID   string
	Muted bool
}

// SubscriptionRequest adds or removes SIDs from the subscriber's desired set.
type SubscriptionRequest struct {
	TrackSIDs []string
	Subscribe bool
}

// TrackSettingRequest adjusts per-track receive behavior (disabled layers,
// preferred simulcast quality, explicit fps).
type TrackSettingRequest struct {
	TrackSIDs []string
	Disabled  bool
	Quality   int32
	Width     int32
	Height    int32
	FPS       int32
}

// LeaveReason explains why the server or client ended the session.
type LeaveReason int

const (
	LeaveClientRequest LeaveReason = iota
	LeaveServerShutdown
	LeaveRoomDeleted
	LeaveStateMismatch
)

// LeaveRequest is sent by either party to end the session gracefully.
type LeaveRequest struct {
	CanReconnect bool
	Reason       LeaveReason
}

// UpdateLayersRequest changes which simulcast layers are actively published
// for a local video track.
type UpdateLayersRequest struct {
	TrackSID string
	Layers   []VideoLayer
}

// SubscriptionPermissionRequest restricts which participants may subscribe
// to the sender's published tracks.
type SubscriptionPermissionRequest struct {
	AllParticipants bool
	AllowedIdentity string
	TrackSIDs       []string
}

// SyncStateRequest re-establishes subscriptions and track settings after a
// quick reconnect, without a fresh SDP offer/answer round.
type SyncStateRequest struct {
	Answer        *SessionDescription
	Subscription  SubscriptionRequest
	PublishedCIDs []string
}

// SimulateScenarioRequest triggers a server-side test scenario (used by
// integration tests and the reference client's developer console, never by
// normal application code).
type SimulateScenarioRequest struct {
	Scenario string
}

// UpdateParticipantMetadataRequest asks the server to update the local
// participant's name/metadata, subject to room permissions.
type UpdateParticipantMetadataRequest struct {
	Name     string
	Metadata string
}

// Ping is the periodic signaling-level keepalive request.
type Ping struct {
	Timestamp int64
	RTT       int64
}

// Pong answers a Ping, echoing its timestamp in LastPingTimestamp.
type Pong struct {
	LastPingTimestamp int64
	Timestamp         int64
}

// UpdateLocalTrackRequest republishes a local track's settings. The
// signaling engine refuses to emit it below the protocol revision that
// introduced it.
type UpdateLocalTrackRequest struct {
	TrackSID string
	Track    AddTrackRequest
}

// ParticipantInfo describes one room participant, local or remote.
type ParticipantInfo struct {
	SID      string
	Identity string
	Name     string
	Metadata string
	Tracks   []TrackInfo
	State    ParticipantUpdateState
}

// ParticipantUpdateState distinguishes an active participant entry from a
// disconnected one included only to announce the departure.
type ParticipantUpdateState int

const (
	ParticipantActive ParticipantUpdateState = iota
	ParticipantDisconnected
)

// ParticipantUpdate carries the new/changed roster entries for a room.
type ParticipantUpdate struct {
	Participants []ParticipantInfo
}

// JoinResponse is the server's reply completing a connection handshake.
type JoinResponse struct {
	Room                 string
	Participant          ParticipantInfo
	OtherParticipants    []ParticipantInfo
	ServerVersion        string
	IceServers           []string
	SubscriberPrimary    bool
	ProtocolVersion      int32
	PingTimeoutSeconds   int32
	PingIntervalSeconds  int32
	FastPublish          bool
}

// TrackPublished confirms the server accepted a previously announced
// AddTrackRequest, binding its CID to the assigned SID.
type TrackPublished struct {
	CID   string
	Track TrackInfo
}

// TrackUnpublished announces a track's SID is no longer valid.
type TrackUnpublished struct {
	TrackSID string
}

// SpeakersChangedEntry reports one active speaker's current audio level.
type SpeakersChangedEntry struct {
	ParticipantSID string
	Level          float32
	Active         bool
}

// SpeakersChanged reports the current set of active speakers in the room.
type SpeakersChanged struct {
	Speakers []SpeakersChangedEntry
}

// RoomUpdateInfo carries room-level metadata changes (name, max participants).
type RoomUpdateInfo struct {
	Name            string
	Metadata        string
	MaxParticipants int32
}

// ConnectionQuality enumerates the coarse quality bucket the server reports
// per participant.
type ConnectionQuality int

const (
	QualityPoor ConnectionQuality = iota
	QualityGood
	QualityExcellent
)

// ConnectionQualityEntry reports one participant's current quality bucket.
type ConnectionQualityEntry struct {
	ParticipantSID string
	Quality        ConnectionQuality
	Score          float32
}

// ConnectionQualityUpdate carries the current quality bucket for each
// participant in the room.
type ConnectionQualityUpdate struct {
	Updates []ConnectionQualityEntry
}

// StreamState enumerates whether a subscribed track's underlying stream is
// actively flowing or paused (e.g. due to bandwidth constraints).
type StreamState int

const (
	StreamActive StreamState = iota
	StreamPaused
)

// StreamStateEntry reports the stream state of one subscribed track.
type StreamStateEntry struct {
	ParticipantSID string
	TrackSID       string
	State          StreamState
}

// StreamStateUpdate carries the current stream state for a set of
// subscribed tracks.
type StreamStateUpdate struct {
	StreamStates []StreamStateEntry
}

// SubscribedQuality reports the quality the server actually selected for one
// simulcast/SVC layer of a subscription, which may differ from what was
// requested.
type SubscribedQuality struct {
	Quality  int32
	Enabled  bool
}

// SubscribedQualityUpdate reports the server's per-layer subscription
// decisions for one published track.
type SubscribedQualityUpdate struct {
	TrackSID          string
	SubscribedQualities []SubscribedQuality
}

// SubscriptionPermissionUpdate notifies the subscriber that its permission
// to subscribe to a given track changed.
type SubscriptionPermissionUpdate struct {
	ParticipantSID string
	TrackSID       string
	Allowed        bool
}

// RefreshToken carries a renewed access token to use on the next reconnect.
type RefreshToken struct {
	Token string
}

// ReconnectResponse answers a reconnect attempt with the ICE servers to use
// for the resumed session.
type ReconnectResponse struct {
	IceServers []string
}

// SubscriptionResponse reports per-SID errors for a previously sent
// SubscriptionRequest (e.g. subscribing to a SID that no longer exists).
type SubscriptionResponse struct {
	TrackSIDs []string
	Err       string
}

// RequestResponse correlates an asynchronous error/ack with the client
// request that triggered it, by request ID.
type RequestResponseReason int

const (
	RequestOK RequestResponseReason = iota
	RequestNotFound
	RequestNotAllowed
	RequestLimitExceeded
)

// RequestResponse acknowledges or rejects a previously sent request.
type RequestResponse struct {
	RequestID uint32
	Reason    RequestResponseReason
	Message   string
}

// TrackSubscribed confirms a subscription succeeded and the remote track is
// ready to be bound to its receiver.
type TrackSubscribed struct {
	TrackSID string
}
