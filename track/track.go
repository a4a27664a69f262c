/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package track implements the entities of the track data model: local and
// remote tracks, their kind/source/encryption attributes, and the arena that
// owns them. The two axes of variation (local vs remote, audio vs video)
// are expressed as plain structs plus a Kind enum rather than a type
// hierarchy.
package track

import (
	"sync"

	"github.com/google/uuid"
)

// Kind identifies whether a track carries audio or video.
type Kind int

const (
	KindAudio Kind = iota
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Source identifies the origin of a track's media.
type Source int

const (
	SourceUnknown Source = iota
	SourceMicrophone
	SourceCamera
	SourceScreenShare
	SourceScreenShareAudio
)

func (s Source) String() string {
	switch s {
	case SourceMicrophone:
		return "microphone"
	case SourceCamera:
		return "camera"
	case SourceScreenShare:
		return "screen_share"
	case SourceScreenShareAudio:
		return "screen_share_audio"
	default:
		return "unknown"
	}
}

// EncryptionMode selects the end-to-end media encryption scheme for a track.
// It is set at publish time and the controller never mutates it afterward.
type EncryptionMode int

const (
	EncryptionNone EncryptionMode = iota
	EncryptionGcm
	EncryptionCustom
)

func (e EncryptionMode) String() string {
	switch e {
	case EncryptionGcm:
		return "gcm"
	case EncryptionCustom:
		return "custom"
	default:
		return "none"
	}
}

// VideoHints carries the optional, zero-value-safe video publish hints.
// They are consumed only by the video publish path and never affect audio
// tracks.
type VideoHints struct {
	Width, Height     int32
	MaxFPS            int32
	DegradationPref   DegradationPreference
}

// DegradationPreference mirrors the w3c RTCDegradationPreference enum.
type DegradationPreference int

const (
	DegradationDefault DegradationPreference = iota
	DegradationDisabled
	DegradationMaintainFramerate
	DegradationMaintainResolution
	DegradationBalanced
)

// NewCID mints a stable client-assigned track identifier, a URL-safe UUID.
func NewCID() string {
	return uuid.New().String()
}

// Sender is the minimal shape of the media engine's outbound sender handle
// that the track model needs: its locally-assigned media id, which the
// controller compares against a LocalTrack's CID to establish a binding.
type Sender interface {
	LocalID() string
}

// Receiver is the minimal shape of the media engine's inbound receiver
// handle that the track model needs to bind to a RemoteTrack.
type Receiver interface {
	ID() string
}

// LocalTrack is an application-originated track awaiting or currently
// published to the room.
type LocalTrack struct {
	mu sync.RWMutex

	cid    string
	name   string
	kind   Kind
	source Source

	encryption EncryptionMode
	video      VideoHints

	muted          bool
	remoteSideMute bool

	sid    string
	sender Sender
}

// NewLocalTrack creates a LocalTrack with a freshly minted CID. name, kind
// and source are fixed for the track's lifetime; encryption is fixed at
// construction; nothing mutates the encryption mode after publish.
func NewLocalTrack(name string, kind Kind, source Source, encryption EncryptionMode) *LocalTrack {
	return &LocalTrack{
		cid:        NewCID(),
		name:       name,
		kind:       kind,
		source:     source,
		encryption: encryption,
	}
}

func (t *LocalTrack) CID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cid
}

func (t *LocalTrack) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

func (t *LocalTrack) Kind() Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.kind
}

func (t *LocalTrack) Source() Source {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.source
}

func (t *LocalTrack) Encryption() EncryptionMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.encryption
}

// SetVideoHints sets the optional video publish hints. A no-op for audio
// tracks is allowed (the hints are simply never read by the audio path).
func (t *LocalTrack) SetVideoHints(h VideoHints) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.video = h
}

func (t *LocalTrack) VideoHints() VideoHints {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.video
}

// SID returns the server-assigned track id, or "" if not yet published.
func (t *LocalTrack) SID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sid
}

// bindSID is called by the session controller once the server acknowledges
// the AddTrackRequest. The SID does not change again until the track is
// unpublished.
func (t *LocalTrack) bindSID(sid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sid = sid
}

// Sender returns the bound outbound sender, or nil if unpublished.
func (t *LocalTrack) Sender() Sender {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sender
}

func (t *LocalTrack) bindSender(s Sender) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sender = s
}

// unbind releases the sender and SID, returning the track to the
// unpublished state without losing its CID — used when the server never
// acknowledges a publish, or on disconnect.
func (t *LocalTrack) unbind() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sender = nil
	t.sid = ""
}

// IsPublished reports whether a sender is currently bound.
func (t *LocalTrack) IsPublished() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sender != nil
}

// Muted returns the local mute flag.
func (t *LocalTrack) Muted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.muted
}

// setMuted sets the local mute flag and reports whether it changed, so the
// caller emits exactly one notification per actual change.
func (t *LocalTrack) setMuted(muted bool) (changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed = t.muted != muted
	t.muted = muted
	return changed
}

// RemoteSideMute returns the last server-reported moderator mute of this
// local track.
func (t *LocalTrack) RemoteSideMute() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.remoteSideMute
}

func (t *LocalTrack) setRemoteSideMute(muted bool) (changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed = t.remoteSideMute != muted
	t.remoteSideMute = muted
	return changed
}

// Equal is a structural comparison over all semantic fields, never a
// pointer-identity shortcut.
func (t *LocalTrack) Equal(o *LocalTrack) bool {
	if t == nil || o == nil {
		return t == o
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	o.mu.RLock()
	defer o.mu.RUnlock()
	return t.cid == o.cid &&
		t.name == o.name &&
		t.kind == o.kind &&
		t.source == o.source &&
		t.encryption == o.encryption &&
		t.muted == o.muted &&
		t.remoteSideMute == o.remoteSideMute &&
		t.sid == o.sid
}

// RemoteTrack is a track published by another participant and observed
// through this session.
type RemoteTrack struct {
	mu sync.RWMutex

	sid        string
	name       string
	kind       Kind
	source     Source
	encryption EncryptionMode

	muted    bool
	receiver Receiver
}

// NewRemoteTrack constructs a RemoteTrack from server-reported TrackInfo.
// Muted state on arrival is the server-reported value, never a local
// default.
func NewRemoteTrack(sid, name string, kind Kind, source Source, encryption EncryptionMode, muted bool) *RemoteTrack {
	return &RemoteTrack{
		sid:        sid,
		name:       name,
		kind:       kind,
		source:     source,
		encryption: encryption,
		muted:      muted,
	}
}

func (t *RemoteTrack) SID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sid
}

func (t *RemoteTrack) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

func (t *RemoteTrack) Kind() Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.kind
}

func (t *RemoteTrack) Source() Source {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.source
}

func (t *RemoteTrack) Encryption() EncryptionMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.encryption
}

func (t *RemoteTrack) Muted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.muted
}

func (t *RemoteTrack) setMuted(muted bool) (changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed = t.muted != muted
	t.muted = muted
	return changed
}

func (t *RemoteTrack) Receiver() Receiver {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.receiver
}

func (t *RemoteTrack) bindReceiver(r Receiver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.receiver = r
}

// Equal is a structural comparison over all semantic fields.
func (t *RemoteTrack) Equal(o *RemoteTrack) bool {
	if t == nil || o == nil {
		return t == o
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	o.mu.RLock()
	defer o.mu.RUnlock()
	return t.sid == o.sid &&
		t.name == o.name &&
		t.kind == o.kind &&
		t.source == o.source &&
		t.encryption == o.encryption &&
		t.muted == o.muted
}
