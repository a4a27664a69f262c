/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers for SessionDescription.
const (
	fSDPKind = 1
	fSDPSDP  = 2
)

func (s SessionDescription) encode() []byte {
	var b builder
	b.varint(fSDPKind, int64(s.Kind))
	b.string(fSDPSDP, s.SDP)
	return b.bytes()
}

func decodeSessionDescription(data []byte) (SessionDescription, error) {
	var s SessionDescription
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSDPKind:
			v, n := consumeInt32(d)
			s.Kind = SDPKind(v)
			return true, n
		case fSDPSDP:
			v, n := consumeString(d)
			s.SDP = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

// Field numbers for TrickleRequest.
const (
	fTrickleCandidate = 1
	fTrickleTarget    = 2
	fTrickleFinal     = 3
)

func (t TrickleRequest) encode() []byte {
	var b builder
	b.string(fTrickleCandidate, t.CandidateInit)
	b.varint(fTrickleTarget, int64(t.Target))
	b.boolean(fTrickleFinal, t.Final)
	return b.bytes()
}

func decodeTrickleRequest(data []byte) (TrickleRequest, error) {
	var t TrickleRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fTrickleCandidate:
			v, n := consumeString(d)
			t.CandidateInit = v
			return true, n
		case fTrickleTarget:
			v, n := consumeInt32(d)
			t.Target = TrickleTarget(v)
			return true, n
		case fTrickleFinal:
			v, n := consumeBool(d)
			t.Final = v
			return true, n
		}
		return false, 0
	})
	return t, err
}

// Field numbers for VideoLayer.
const (
	fLayerQuality = 1
	fLayerWidth   = 2
	fLayerHeight  = 3
	fLayerBitrate = 4
	fLayerSSRC    = 5
)

func (l VideoLayer) encode() []byte {
	var b builder
	b.varint(fLayerQuality, int64(l.Quality))
	b.varint(fLayerWidth, int64(l.Width))
	b.varint(fLayerHeight, int64(l.Height))
	b.varint(fLayerBitrate, int64(l.Bitrate))
	b.varint(fLayerSSRC, int64(l.SSRC))
	return b.bytes()
}

func decodeVideoLayer(data []byte) (VideoLayer, error) {
	var l VideoLayer
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fLayerQuality:
			v, n := consumeInt32(d)
			l.Quality = v
			return true, n
		case fLayerWidth:
			v, n := consumeInt32(d)
			l.Width = v
			return true, n
		case fLayerHeight:
			v, n := consumeInt32(d)
			l.Height = v
			return true, n
		case fLayerBitrate:
			v, n := consumeInt32(d)
			l.Bitrate = v
			return true, n
		case fLayerSSRC:
			v, n := consumeInt64(d)
			l.SSRC = uint32(v)
			return true, n
		}
		return false, 0
	})
	return l, err
}

// Field numbers for TrackInfo.
const (
	fTrackInfoSID        = 1
	fTrackInfoKind       = 2
	fTrackInfoName       = 3
	fTrackInfoMuted      = 4
	fTrackInfoWidth      = 5
	fTrackInfoHeight     = 6
	fTrackInfoSimulcast  = 7
	fTrackInfoSource     = 8
	fTrackInfoLayers     = 9
	fTrackInfoEncryption = 10
)

func (t TrackInfo) encode() []byte {
	var b builder
	b.string(fTrackInfoSID, t.SID)
	b.varint(fTrackInfoKind, int64(t.Kind))
	b.string(fTrackInfoName, t.Name)
	b.boolean(fTrackInfoMuted, t.Muted)
	b.varint(fTrackInfoWidth, int64(t.Width))
	b.varint(fTrackInfoHeight, int64(t.Height))
	b.boolean(fTrackInfoSimulcast, t.Simulcast)
	b.varint(fTrackInfoSource, int64(t.Source))
	for _, layer := range t.Layers {
		b.message(fTrackInfoLayers, layer.encode())
	}
	b.varint(fTrackInfoEncryption, int64(t.Encryption))
	return b.bytes()
}

func decodeTrackInfo(data []byte) (TrackInfo, error) {
	var t TrackInfo
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fTrackInfoSID:
			v, n := consumeString(d)
			t.SID = v
			return true, n
		case fTrackInfoKind:
			v, n := consumeInt32(d)
			t.Kind = TrackKind(v)
			return true, n
		case fTrackInfoName:
			v, n := consumeString(d)
			t.Name = v
			return true, n
		case fTrackInfoMuted:
			v, n := consumeBool(d)
			t.Muted = v
			return true, n
		case fTrackInfoWidth:
			v, n := consumeInt32(d)
			t.Width = v
			return true, n
		case fTrackInfoHeight:
			v, n := consumeInt32(d)
			t.Height = v
			return true, n
		case fTrackInfoSimulcast:
			v, n := consumeBool(d)
			t.Simulcast = v
			return true, n
		case fTrackInfoSource:
			v, n := consumeInt32(d)
			t.Source = TrackSource(v)
			return true, n
		case fTrackInfoLayers:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			layer, err := decodeVideoLayer(msg)
			if err != nil {
				return true, -1
			}
			t.Layers = append(t.Layers, layer)
			return true, n
		case fTrackInfoEncryption:
			v, n := consumeInt32(d)
			t.Encryption = EncryptionType(v)
			return true, n
		}
		return false, 0
	})
	return t, err
}

// Field numbers for AddTrackRequest.
const (
	fAddTrackCID        = 1
	fAddTrackName       = 2
	fAddTrackKind       = 3
	fAddTrackWidth      = 4
	fAddTrackHeight     = 5
	fAddTrackSource     = 6
	fAddTrackMuted      = 7
	fAddTrackEncryption = 8
)

func (a AddTrackRequest) encode() []byte {
	var b builder
	b.string(fAddTrackCID, a.CID)
	b.string(fAddTrackName, a.Name)
	b.varint(fAddTrackKind, int64(a.Kind))
	b.varint(fAddTrackWidth, int64(a.Width))
	b.varint(fAddTrackHeight, int64(a.Height))
	b.varint(fAddTrackSource, int64(a.Source))
	b.boolean(fAddTrackMuted, a.Muted)
	b.varint(fAddTrackEncryption, int64(a.Encryption))
	return b.bytes()
}

func decodeAddTrackRequest(data []byte) (AddTrackRequest, error) {
	var a AddTrackRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fAddTrackCID:
			v, n := consumeString(d)
			a.CID = v
			return true, n
		case fAddTrackName:
			v, n := consumeString(d)
			a.Name = v
			return true, n
		case fAddTrackKind:
			v, n := consumeInt32(d)
			a.Kind = TrackKind(v)
			return true, n
		case fAddTrackWidth:
			v, n := consumeInt32(d)
			a.Width = v
			return true, n
		case fAddTrackHeight:
			v, n := consumeInt32(d)
			a.Height = v
			return true, n
		case fAddTrackSource:
			v, n := consumeInt32(d)
			a.Source = TrackSource(v)
			return true, n
		case fAddTrackMuted:
			v, n := consumeBool(d)
			a.Muted = v
			return true, n
		case fAddTrackEncryption:
			v, n := consumeInt32(d)
			a.Encryption = EncryptionType(v)
			return true, n
		}
		return false, 0
	})
	return a, err
}

// Field numbers for MuteTrackRequest.
const (
	fMuteSID   = 1
	fMuteMuted = 2
)

func (m MuteTrackRequest) encode() []byte {
	var b builder
	b.string(fMuteSID, m.SID)
	b.boolean(fMuteMuted, m.Muted)
	return b.bytes()
}

func decodeMuteTrackRequest(data []byte) (MuteTrackRequest, error) {
	var m MuteTrackRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fMuteSID:
			v, n := consumeString(d)
			m.SID = v
			return true, n
		case fMuteMuted:
			v, n := consumeBool(d)
			m.Muted = v
			return true, n
		}
		return false, 0
	})
	return m, err
}

// Field numbers for SubscriptionRequest.
const (
	fSubSIDs      = 1
	fSubSubscribe = 2
)

func (s SubscriptionRequest) encode() []byte {
	var b builder
	for _, sid := range s.TrackSIDs {
		b.string(fSubSIDs, sid)
	}
	b.boolean(fSubSubscribe, s.Subscribe)
	return b.bytes()
}

func decodeSubscriptionRequest(data []byte) (SubscriptionRequest, error) {
	var s SubscriptionRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubSIDs:
			v, n := consumeString(d)
			s.TrackSIDs = append(s.TrackSIDs, v)
			return true, n
		case fSubSubscribe:
			v, n := consumeBool(d)
			s.Subscribe = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

// Field numbers for TrackSettingRequest.
const (
	fSettingSIDs     = 1
	fSettingDisabled = 2
	fSettingQuality  = 3
	fSettingWidth    = 4
	fSettingHeight   = 5
	fSettingFPS      = 6
)

func (s TrackSettingRequest) encode() []byte {
	var b builder
	for _, sid := range s.TrackSIDs {
		b.string(fSettingSIDs, sid)
	}
	b.boolean(fSettingDisabled, s.Disabled)
	b.varint(fSettingQuality, int64(s.Quality))
	b.varint(fSettingWidth, int64(s.Width))
	b.varint(fSettingHeight, int64(s.Height))
	b.varint(fSettingFPS, int64(s.FPS))
	return b.bytes()
}

func decodeTrackSettingRequest(data []byte) (TrackSettingRequest, error) {
	var s TrackSettingRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSettingSIDs:
			v, n := consumeString(d)
			s.TrackSIDs = append(s.TrackSIDs, v)
			return true, n
		case fSettingDisabled:
			v, n := consumeBool(d)
			s.Disabled = v
			return true, n
		case fSettingQuality:
			v, n := consumeInt32(d)
			s.Quality = v
			return true, n
		case fSettingWidth:
			v, n := consumeInt32(d)
			s.Width = v
			return true, n
		case fSettingHeight:
			v, n := consumeInt32(d)
			s.Height = v
			return true, n
		case fSettingFPS:
			v, n := consumeInt32(d)
			s.FPS = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

// Field numbers for LeaveRequest.
const (
	fLeaveCanReconnect = 1
	fLeaveReason       = 2
)

func (l LeaveRequest) encode() []byte {
	var b builder
	b.boolean(fLeaveCanReconnect, l.CanReconnect)
	b.varint(fLeaveReason, int64(l.Reason))
	return b.bytes()
}

func decodeLeaveRequest(data []byte) (LeaveRequest, error) {
	var l LeaveRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fLeaveCanReconnect:
			v, n := consumeBool(d)
			l.CanReconnect = v
			return true, n
		case fLeaveReason:
			v, n := consumeInt32(d)
			l.Reason = LeaveReason(v)
			return true, n
		}
		return false, 0
	})
	return l, err
}

// Field numbers for UpdateLayersRequest.
const (
	fUpdateLayersSID    = 1
	fUpdateLayersLayers = 2
)

func (u UpdateLayersRequest) encode() []byte {
	var b builder
	b.string(fUpdateLayersSID, u.TrackSID)
	for _, layer := range u.Layers {
		b.message(fUpdateLayersLayers, layer.encode())
	}
	return b.bytes()
}

func decodeUpdateLayersRequest(data []byte) (UpdateLayersRequest, error) {
	var u UpdateLayersRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fUpdateLayersSID:
			v, n := consumeString(d)
			u.TrackSID = v
			return true, n
		case fUpdateLayersLayers:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			layer, err := decodeVideoLayer(msg)
			if err != nil {
				return true, -1
			}
			u.Layers = append(u.Layers, layer)
			return true, n
		}
		return false, 0
	})
	return u, err
}

// Field numbers for SubscriptionPermissionRequest.
const (
	fSubPermAll      = 1
	fSubPermIdentity = 2
	fSubPermSIDs     = 3
)

func (s SubscriptionPermissionRequest) encode() []byte {
	var b builder
	b.boolean(fSubPermAll, s.AllParticipants)
	b.string(fSubPermIdentity, s.AllowedIdentity)
	for _, sid := range s.TrackSIDs {
		b.string(fSubPermSIDs, sid)
	}
	return b.bytes()
}

func decodeSubscriptionPermissionRequest(data []byte) (SubscriptionPermissionRequest, error) {
	var s SubscriptionPermissionRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubPermAll:
			v, n := consumeBool(d)
			s.AllParticipants = v
			return true, n
		case fSubPermIdentity:
			v, n := consumeString(d)
			s.AllowedIdentity = v
			return true, n
		case fSubPermSIDs:
			v, n := consumeString(d)
			s.TrackSIDs = append(s.TrackSIDs, v)
			return true, n
		}
		return false, 0
	})
	return s, err
}

// Field numbers for SyncStateRequest.
const (
	fSyncAnswer  = 1
	fSyncSub     = 2
	fSyncCIDs    = 3
)

func (s SyncStateRequest) encode() []byte {
	var b builder
	if s.Answer != nil {
		b.message(fSyncAnswer, s.Answer.encode())
	}
	b.message(fSyncSub, s.Subscription.encode())
	for _, cid := range s.PublishedCIDs {
		b.string(fSyncCIDs, cid)
	}
	return b.bytes()
}

func decodeSyncStateRequest(data []byte) (SyncStateRequest, error) {
	var s SyncStateRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSyncAnswer:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			answer, err := decodeSessionDescription(msg)
			if err != nil {
				return true, -1
			}
			s.Answer = &answer
			return true, n
		case fSyncSub:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			sub, err := decodeSubscriptionRequest(msg)
			if err != nil {
				return true, -1
			}
			s.Subscription = sub
			return true, n
		case fSyncCIDs:
			v, n := consumeString(d)
			s.PublishedCIDs = append(s.PublishedCIDs, v)
			return true, n
		}
		return false, 0
	})
	return s, err
}

const fSimulateScenario = 1

func (s SimulateScenarioRequest) encode() []byte {
	var b builder
	b.string(fSimulateScenario, s.Scenario)
	return b.bytes()
}

func decodeSimulateScenarioRequest(data []byte) (SimulateScenarioRequest, error) {
	var s SimulateScenarioRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fSimulateScenario {
			v, n := consumeString(d)
			s.Scenario = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fUpdateMetaName = 1
	fUpdateMetaData = 2
)

func (u UpdateParticipantMetadataRequest) encode() []byte {
	var b builder
	b.string(fUpdateMetaName, u.Name)
	b.string(fUpdateMetaData, u.Metadata)
	return b.bytes()
}

func decodeUpdateParticipantMetadataRequest(data []byte) (UpdateParticipantMetadataRequest, error) {
	var u UpdateParticipantMetadataRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fUpdateMetaName:
			v, n := consumeString(d)
			u.Name = v
			return true, n
		case fUpdateMetaData:
			v, n := consumeString(d)
			u.Metadata = v
			return true, n
		}
		return false, 0
	})
	return u, err
}

const (
	fPingTimestamp = 1
	fPingRTT       = 2
)

func (p Ping) encode() []byte {
	var b builder
	b.varint(fPingTimestamp, p.Timestamp)
	b.varint(fPingRTT, p.RTT)
	return b.bytes()
}

func decodePing(data []byte) (Ping, error) {
	var p Ping
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fPingTimestamp:
			v, n := consumeInt64(d)
			p.Timestamp = v
			return true, n
		case fPingRTT:
			v, n := consumeInt64(d)
			p.RTT = v
			return true, n
		}
		return false, 0
	})
	return p, err
}

const (
	fPongLast      = 1
	fPongTimestamp = 2
)

func (p Pong) encode() []byte {
	var b builder
	b.varint(fPongLast, p.LastPingTimestamp)
	b.varint(fPongTimestamp, p.Timestamp)
	return b.bytes()
}

func decodePong(data []byte) (Pong, error) {
	var p Pong
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fPongLast:
			v, n := consumeInt64(d)
			p.LastPingTimestamp = v
			return true, n
		case fPongTimestamp:
			v, n := consumeInt64(d)
			p.Timestamp = v
			return true, n
		}
		return false, 0
	})
	return p, err
}

const (
	fUpdateLocalSID   = 1
	fUpdateLocalTrack = 2
)

func (u UpdateLocalTrackRequest) encode() []byte {
	var b builder
	b.string(fUpdateLocalSID, u.TrackSID)
	b.message(fUpdateLocalTrack, u.Track.encode())
	return b.bytes()
}

func decodeUpdateLocalTrackRequest(data []byte) (UpdateLocalTrackRequest, error) {
	var u UpdateLocalTrackRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fUpdateLocalSID:
			v, n := consumeString(d)
			u.TrackSID = v
			return true, n
		case fUpdateLocalTrack:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			track, err := decodeAddTrackRequest(msg)
			if err != nil {
				return true, -1
			}
			u.Track = track
			return true, n
		}
		return false, 0
	})
	return u, err
}

const (
	fParticipantSID      = 1
	fParticipantIdentity = 2
	fParticipantName     = 3
	fParticipantMetadata = 4
	fParticipantTracks   = 5
	fParticipantState    = 6
)

func (p ParticipantInfo) encode() []byte {
	var b builder
	b.string(fParticipantSID, p.SID)
	b.string(fParticipantIdentity, p.Identity)
	b.string(fParticipantName, p.Name)
	b.string(fParticipantMetadata, p.Metadata)
	for _, t := range p.Tracks {
		b.message(fParticipantTracks, t.encode())
	}
	b.varint(fParticipantState, int64(p.State))
	return b.bytes()
}

func decodeParticipantInfo(data []byte) (ParticipantInfo, error) {
	var p ParticipantInfo
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fParticipantSID:
			v, n := consumeString(d)
			p.SID = v
			return true, n
		case fParticipantIdentity:
			v, n := consumeString(d)
			p.Identity = v
			return true, n
		case fParticipantName:
			v, n := consumeString(d)
			p.Name = v
			return true, n
		case fParticipantMetadata:
			v, n := consumeString(d)
			p.Metadata = v
			return true, n
		case fParticipantTracks:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			ti, err := decodeTrackInfo(msg)
			if err != nil {
				return true, -1
			}
			p.Tracks = append(p.Tracks, ti)
			return true, n
		case fParticipantState:
			v, n := consumeInt32(d)
			p.State = ParticipantUpdateState(v)
			return true, n
		}
		return false, 0
	})
	return p, err
}

const fParticipantUpdateEntries = 1

func (p ParticipantUpdate) encode() []byte {
	var b builder
	for _, pi := range p.Participants {
		b.message(fParticipantUpdateEntries, pi.encode())
	}
	return b.bytes()
}

func decodeParticipantUpdate(data []byte) (ParticipantUpdate, error) {
	var p ParticipantUpdate
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fParticipantUpdateEntries {
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			pi, err := decodeParticipantInfo(msg)
			if err != nil {
				return true, -1
			}
			p.Participants = append(p.Participants, pi)
			return true, n
		}
		return false, 0
	})
	return p, err
}

const (
	fJoinRoom                = 1
	fJoinParticipant         = 2
	fJoinOthers              = 3
	fJoinServerVersion       = 4
	fJoinIceServers          = 5
	fJoinSubscriberPrimary   = 6
	fJoinProtocolVersion     = 7
	fJoinPingTimeoutSeconds  = 8
	fJoinPingIntervalSeconds = 9
	fJoinFastPublish         = 10
)

func (j JoinResponse) encode() []byte {
	var b builder
	b.string(fJoinRoom, j.Room)
	b.message(fJoinParticipant, j.Participant.encode())
	for _, p := range j.OtherParticipants {
		b.message(fJoinOthers, p.encode())
	}
	b.string(fJoinServerVersion, j.ServerVersion)
	for _, srv := range j.IceServers {
		b.string(fJoinIceServers, srv)
	}
	b.boolean(fJoinSubscriberPrimary, j.SubscriberPrimary)
	b.varint(fJoinProtocolVersion, int64(j.ProtocolVersion))
	b.varint(fJoinPingTimeoutSeconds, int64(j.PingTimeoutSeconds))
	b.varint(fJoinPingIntervalSeconds, int64(j.PingIntervalSeconds))
	b.boolean(fJoinFastPublish, j.FastPublish)
	return b.bytes()
}

func decodeJoinResponse(data []byte) (JoinResponse, error) {
	var j JoinResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fJoinRoom:
			v, n := consumeString(d)
			j.Room = v
			return true, n
		case fJoinParticipant:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			p, err := decodeParticipantInfo(msg)
			if err != nil {
				return true, -1
			}
			j.Participant = p
			return true, n
		case fJoinOthers:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			p, err := decodeParticipantInfo(msg)
			if err != nil {
				return true, -1
			}
			j.OtherParticipants = append(j.OtherParticipants, p)
			return true, n
		case fJoinServerVersion:
			v, n := consumeString(d)
			j.ServerVersion = v
			return true, n
		case fJoinIceServers:
			v, n := consumeString(d)
			j.IceServers = append(j.IceServers, v)
			return true, n
		case fJoinSubscriberPrimary:
			v, n := consumeBool(d)
			j.SubscriberPrimary = v
			return true, n
		case fJoinProtocolVersion:
			v, n := consumeInt32(d)
			j.ProtocolVersion = v
			return true, n
		case fJoinPingTimeoutSeconds:
			v, n := consumeInt32(d)
			j.PingTimeoutSeconds = v
			return true, n
		case fJoinPingIntervalSeconds:
			v, n := consumeInt32(d)
			j.PingIntervalSeconds = v
			return true, n
		case fJoinFastPublish:
			v, n := consumeBool(d)
			j.FastPublish = v
			return true, n
		}
		return false, 0
	})
	return j, err
}

const (
	fTrackPubCID   = 1
	fTrackPubTrack = 2
)

func (t TrackPublished) encode() []byte {
	var b builder
	b.string(fTrackPubCID, t.CID)
	b.message(fTrackPubTrack, t.Track.encode())
	return b.bytes()
}

func decodeTrackPublished(data []byte) (TrackPublished, error) {
	var t TrackPublished
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fTrackPubCID:
			v, n := consumeString(d)
			t.CID = v
			return true, n
		case fTrackPubTrack:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			ti, err := decodeTrackInfo(msg)
			if err != nil {
				return true, -1
			}
			t.Track = ti
			return true, n
		}
		return false, 0
	})
	return t, err
}

const fTrackUnpubSID = 1

func (t TrackUnpublished) encode() []byte {
	var b builder
	b.string(fTrackUnpubSID, t.TrackSID)
	return b.bytes()
}

func decodeTrackUnpublished(data []byte) (TrackUnpublished, error) {
	var t TrackUnpublished
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fTrackUnpubSID {
			v, n := consumeString(d)
			t.TrackSID = v
			return true, n
		}
		return false, 0
	})
	return t, err
}

const (
	fSpeakerSID    = 1
	fSpeakerLevel  = 2
	fSpeakerActive = 3
)

func (s SpeakersChangedEntry) encode() []byte {
	var b builder
	b.string(fSpeakerSID, s.ParticipantSID)
	b.fixed32Float(fSpeakerLevel, s.Level)
	b.boolean(fSpeakerActive, s.Active)
	return b.bytes()
}

func decodeSpeakersChangedEntry(data []byte) (SpeakersChangedEntry, error) {
	var s SpeakersChangedEntry
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSpeakerSID:
			v, n := consumeString(d)
			s.ParticipantSID = v
			return true, n
		case fSpeakerLevel:
			v, n := consumeFloat32(d)
			s.Level = v
			return true, n
		case fSpeakerActive:
			v, n := consumeBool(d)
			s.Active = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

const fSpeakersChangedEntries = 1

func (s SpeakersChanged) encode() []byte {
	var b builder
	for _, e := range s.Speakers {
		b.message(fSpeakersChangedEntries, e.encode())
	}
	return b.bytes()
}

func decodeSpeakersChanged(data []byte) (SpeakersChanged, error) {
	var s SpeakersChanged
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fSpeakersChangedEntries {
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			e, err := decodeSpeakersChangedEntry(msg)
			if err != nil {
				return true, -1
			}
			s.Speakers = append(s.Speakers, e)
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fRoomUpdateName     = 1
	fRoomUpdateMetadata = 2
	fRoomUpdateMax      = 3
)

func (r RoomUpdateInfo) encode() []byte {
	var b builder
	b.string(fRoomUpdateName, r.Name)
	b.string(fRoomUpdateMetadata, r.Metadata)
	b.varint(fRoomUpdateMax, int64(r.MaxParticipants))
	return b.bytes()
}

func decodeRoomUpdateInfo(data []byte) (RoomUpdateInfo, error) {
	var r RoomUpdateInfo
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fRoomUpdateName:
			v, n := consumeString(d)
			r.Name = v
			return true, n
		case fRoomUpdateMetadata:
			v, n := consumeString(d)
			r.Metadata = v
			return true, n
		case fRoomUpdateMax:
			v, n := consumeInt32(d)
			r.MaxParticipants = v
			return true, n
		}
		return false, 0
	})
	return r, err
}

const (
	fCQSID     = 1
	fCQQuality = 2
	fCQScore   = 3
)

func (c ConnectionQualityEntry) encode() []byte {
	var b builder
	b.string(fCQSID, c.ParticipantSID)
	b.varint(fCQQuality, int64(c.Quality))
	b.fixed32Float(fCQScore, c.Score)
	return b.bytes()
}

func decodeConnectionQualityEntry(data []byte) (ConnectionQualityEntry, error) {
	var c ConnectionQualityEntry
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fCQSID:
			v, n := consumeString(d)
			c.ParticipantSID = v
			return true, n
		case fCQQuality:
			v, n := consumeInt32(d)
			c.Quality = ConnectionQuality(v)
			return true, n
		case fCQScore:
			v, n := consumeFloat32(d)
			c.Score = v
			return true, n
		}
		return false, 0
	})
	return c, err
}

const fCQUpdateEntries = 1

func (c ConnectionQualityUpdate) encode() []byte {
	var b builder
	for _, e := range c.Updates {
		b.message(fCQUpdateEntries, e.encode())
	}
	return b.bytes()
}

func decodeConnectionQualityUpdate(data []byte) (ConnectionQualityUpdate, error) {
	var c ConnectionQualityUpdate
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fCQUpdateEntries {
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			e, err := decodeConnectionQualityEntry(msg)
			if err != nil {
				return true, -1
			}
			c.Updates = append(c.Updates, e)
			return true, n
		}
		return false, 0
	})
	return c, err
}

const (
	fSSSID   = 1
	fSSTrack = 2
	fSSState = 3
)

func (s StreamStateEntry) encode() []byte {
	var b builder
	b.string(fSSSID, s.ParticipantSID)
	b.string(fSSTrack, s.TrackSID)
	b.varint(fSSState, int64(s.State))
	return b.bytes()
}

func decodeStreamStateEntry(data []byte) (StreamStateEntry, error) {
	var s StreamStateEntry
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSSSID:
			v, n := consumeString(d)
			s.ParticipantSID = v
			return true, n
		case fSSTrack:
			v, n := consumeString(d)
			s.TrackSID = v
			return true, n
		case fSSState:
			v, n := consumeInt32(d)
			s.State = StreamState(v)
			return true, n
		}
		return false, 0
	})
	return s, err
}

const fSSUpdateEntries = 1

func (s StreamStateUpdate) encode() []byte {
	var b builder
	for _, e := range s.StreamStates {
		b.message(fSSUpdateEntries, e.encode())
	}
	return b.bytes()
}

func decodeStreamStateUpdate(data []byte) (StreamStateUpdate, error) {
	var s StreamStateUpdate
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fSSUpdateEntries {
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			e, err := decodeStreamStateEntry(msg)
			if err != nil {
				return true, -1
			}
			s.StreamStates = append(s.StreamStates, e)
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fSubQQuality = 1
	fSubQEnabled = 2
)

func (s SubscribedQuality) encode() []byte {
	var b builder
	b.varint(fSubQQuality, int64(s.Quality))
	b.boolean(fSubQEnabled, s.Enabled)
	return b.bytes()
}

func decodeSubscribedQuality(data []byte) (SubscribedQuality, error) {
	var s SubscribedQuality
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubQQuality:
			v, n := consumeInt32(d)
			s.Quality = v
			return true, n
		case fSubQEnabled:
			v, n := consumeBool(d)
			s.Enabled = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fSubQUpdateSID       = 1
	fSubQUpdateQualities = 2
)

func (s SubscribedQualityUpdate) encode() []byte {
	var b builder
	b.string(fSubQUpdateSID, s.TrackSID)
	for _, q := range s.SubscribedQualities {
		b.message(fSubQUpdateQualities, q.encode())
	}
	return b.bytes()
}

func decodeSubscribedQualityUpdate(data []byte) (SubscribedQualityUpdate, error) {
	var s SubscribedQualityUpdate
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubQUpdateSID:
			v, n := consumeString(d)
			s.TrackSID = v
			return true, n
		case fSubQUpdateQualities:
			msg, n := consumeMessage(d)
			if n < 0 {
				return true, n
			}
			q, err := decodeSubscribedQuality(msg)
			if err != nil {
				return true, -1
			}
			s.SubscribedQualities = append(s.SubscribedQualities, q)
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fSubPermUpdSID    = 1
	fSubPermUpdTrack  = 2
	fSubPermUpdAllow  = 3
)

func (s SubscriptionPermissionUpdate) encode() []byte {
	var b builder
	b.string(fSubPermUpdSID, s.ParticipantSID)
	b.string(fSubPermUpdTrack, s.TrackSID)
	b.boolean(fSubPermUpdAllow, s.Allowed)
	return b.bytes()
}

func decodeSubscriptionPermissionUpdate(data []byte) (SubscriptionPermissionUpdate, error) {
	var s SubscriptionPermissionUpdate
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubPermUpdSID:
			v, n := consumeString(d)
			s.ParticipantSID = v
			return true, n
		case fSubPermUpdTrack:
			v, n := consumeString(d)
			s.TrackSID = v
			return true, n
		case fSubPermUpdAllow:
			v, n := consumeBool(d)
			s.Allowed = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

const fRefreshToken = 1

func (r RefreshToken) encode() []byte {
	var b builder
	b.string(fRefreshToken, r.Token)
	return b.bytes()
}

func decodeRefreshToken(data []byte) (RefreshToken, error) {
	var r RefreshToken
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fRefreshToken {
			v, n := consumeString(d)
			r.Token = v
			return true, n
		}
		return false, 0
	})
	return r, err
}

const fReconnectIceServers = 1

func (r ReconnectResponse) encode() []byte {
	var b builder
	for _, s := range r.IceServers {
		b.string(fReconnectIceServers, s)
	}
	return b.bytes()
}

func decodeReconnectResponse(data []byte) (ReconnectResponse, error) {
	var r ReconnectResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fReconnectIceServers {
			v, n := consumeString(d)
			r.IceServers = append(r.IceServers, v)
			return true, n
		}
		return false, 0
	})
	return r, err
}

const (
	fSubRespSIDs = 1
	fSubRespErr  = 2
)

func (s SubscriptionResponse) encode() []byte {
	var b builder
	for _, sid := range s.TrackSIDs {
		b.string(fSubRespSIDs, sid)
	}
	b.string(fSubRespErr, s.Err)
	return b.bytes()
}

func decodeSubscriptionResponse(data []byte) (SubscriptionResponse, error) {
	var s SubscriptionResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fSubRespSIDs:
			v, n := consumeString(d)
			s.TrackSIDs = append(s.TrackSIDs, v)
			return true, n
		case fSubRespErr:
			v, n := consumeString(d)
			s.Err = v
			return true, n
		}
		return false, 0
	})
	return s, err
}

const (
	fReqRespID      = 1
	fReqRespReason  = 2
	fReqRespMessage = 3
)

func (r RequestResponse) encode() []byte {
	var b builder
	b.varint(fReqRespID, int64(r.RequestID))
	b.varint(fReqRespReason, int64(r.Reason))
	b.string(fReqRespMessage, r.Message)
	return b.bytes()
}

func decodeRequestResponse(data []byte) (RequestResponse, error) {
	var r RequestResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		switch num {
		case fReqRespID:
			v, n := consumeInt64(d)
			r.RequestID = uint32(v)
			return true, n
		case fReqRespReason:
			v, n := consumeInt32(d)
			r.Reason = RequestResponseReason(v)
			return true, n
		case fReqRespMessage:
			v, n := consumeString(d)
			r.Message = v
			return true, n
		}
		return false, 0
	})
	return r, err
}

const fTrackSubscribedSID = 1

func (t TrackSubscribed) encode() []byte {
	var b builder
	b.string(fTrackSubscribedSID, t.TrackSID)
	return b.bytes()
}

func decodeTrackSubscribed(data []byte) (TrackSubscribed, error) {
	var t TrackSubscribed
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if num == fTrackSubscribedSID {
			v, n := consumeString(d)
			t.TrackSID = v
			return true, n
		}
		return false, 0
	})
	return t, err
}

// SignalRequest is the client-to-server envelope, a oneof over the
// request variants of the signaling protocol.
type SignalRequest struct {
	Offer                  *SessionDescription
	Answer                 *SessionDescription
	Trickle                *TrickleRequest
	AddTrack               *AddTrackRequest
	Mute                   *MuteTrackRequest
	Subscription           *SubscriptionRequest
	TrackSetting           *TrackSettingRequest
	Leave                  *LeaveRequest
	UpdateLayers           *UpdateLayersRequest
	SubscriptionPermission *SubscriptionPermissionRequest
	SyncState              *SyncStateRequest
	Simulate               *SimulateScenarioRequest
	UpdateMetadata         *UpdateParticipantMetadataRequest
	Ping                   *Ping
	UpdateAudioTrack       *UpdateLocalTrackRequest
	UpdateVideoTrack       *UpdateLocalTrackRequest
}

const (
	reqOffer                  = 1
	reqAnswer                 = 2
	reqTrickle                = 3
	reqAddTrack               = 4
	reqMute                   = 5
	reqSubscription           = 6
	reqTrackSetting           = 7
	reqLeave                  = 8
	reqUpdateLayers           = 9
	reqSubscriptionPermission = 10
	reqSyncState              = 11
	reqSimulate               = 12
	reqUpdateMetadata         = 13
	reqPing                   = 14
	reqUpdateAudioTrack       = 15
	reqUpdateVideoTrack       = 16
)

// Encode serializes the request to its length-delimited wire form. Exactly
// one field must be set; Encode does not validate this and will encode
// whichever set of fields the caller populated.
func (r SignalRequest) Encode() []byte {
	var b builder
	if r.Offer != nil {
		b.message(reqOffer, r.Offer.encode())
	}
	if r.Answer != nil {
		b.message(reqAnswer, r.Answer.encode())
	}
	if r.Trickle != nil {
		b.message(reqTrickle, r.Trickle.encode())
	}
	if r.AddTrack != nil {
		b.message(reqAddTrack, r.AddTrack.encode())
	}
	if r.Mute != nil {
		b.message(reqMute, r.Mute.encode())
	}
	if r.Subscription != nil {
		b.message(reqSubscription, r.Subscription.encode())
	}
	if r.TrackSetting != nil {
		b.message(reqTrackSetting, r.TrackSetting.encode())
	}
	if r.Leave != nil {
		b.message(reqLeave, r.Leave.encode())
	}
	if r.UpdateLayers != nil {
		b.message(reqUpdateLayers, r.UpdateLayers.encode())
	}
	if r.SubscriptionPermission != nil {
		b.message(reqSubscriptionPermission, r.SubscriptionPermission.encode())
	}
	if r.SyncState != nil {
		b.message(reqSyncState, r.SyncState.encode())
	}
	if r.Simulate != nil {
		b.message(reqSimulate, r.Simulate.encode())
	}
	if r.UpdateMetadata != nil {
		b.message(reqUpdateMetadata, r.UpdateMetadata.encode())
	}
	if r.Ping != nil {
		b.message(reqPing, r.Ping.encode())
	}
	if r.UpdateAudioTrack != nil {
		b.message(reqUpdateAudioTrack, r.UpdateAudioTrack.encode())
	}
	if r.UpdateVideoTrack != nil {
		b.message(reqUpdateVideoTrack, r.UpdateVideoTrack.encode())
	}
	return b.bytes()
}

// DecodeSignalRequest parses a length-delimited frame into a SignalRequest.
// A top-level field number this decoder does not recognize is silently
// skipped rather than rejected: newer servers are free to add oneof
// variants without breaking this client.
func DecodeSignalRequest(data []byte) (SignalRequest, error) {
	var r SignalRequest
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if typ != protowire.BytesType {
			return false, 0
		}
		msg, n := consumeMessage(d)
		if n < 0 {
			return true, n
		}
		var decodeErr error
		switch num {
		case reqOffer:
			v, e := decodeSessionDescription(msg)
			r.Offer, decodeErr = &v, e
		case reqAnswer:
			v, e := decodeSessionDescription(msg)
			r.Answer, decodeErr = &v, e
		case reqTrickle:
			v, e := decodeTrickleRequest(msg)
			r.Trickle, decodeErr = &v, e
		case reqAddTrack:
			v, e := decodeAddTrackRequest(msg)
			r.AddTrack, decodeErr = &v, e
		case reqMute:
			v, e := decodeMuteTrackRequest(msg)
			r.Mute, decodeErr = &v, e
		case reqSubscription:
			v, e := decodeSubscriptionRequest(msg)
			r.Subscription, decodeErr = &v, e
		case reqTrackSetting:
			v, e := decodeTrackSettingRequest(msg)
			r.TrackSetting, decodeErr = &v, e
		case reqLeave:
			v, e := decodeLeaveRequest(msg)
			r.Leave, decodeErr = &v, e
		case reqUpdateLayers:
			v, e := decodeUpdateLayersRequest(msg)
			r.UpdateLayers, decodeErr = &v, e
		case reqSubscriptionPermission:
			v, e := decodeSubscriptionPermissionRequest(msg)
			r.SubscriptionPermission, decodeErr = &v, e
		case reqSyncState:
			v, e := decodeSyncStateRequest(msg)
			r.SyncState, decodeErr = &v, e
		case reqSimulate:
			v, e := decodeSimulateScenarioRequest(msg)
			r.Simulate, decodeErr = &v, e
		case reqUpdateMetadata:
			v, e := decodeUpdateParticipantMetadataRequest(msg)
			r.UpdateMetadata, decodeErr = &v, e
		case reqPing:
			v, e := decodePing(msg)
			r.Ping, decodeErr = &v, e
		case reqUpdateAudioTrack:
			v, e := decodeUpdateLocalTrackRequest(msg)
			r.UpdateAudioTrack, decodeErr = &v, e
		case reqUpdateVideoTrack:
			v, e := decodeUpdateLocalTrackRequest(msg)
			r.UpdateVideoTrack, decodeErr = &v, e
		default:
			return false, 0
		}
		if decodeErr != nil {
			return true, -1
		}
		return true, n
	})
	return r, err
}

// SignalResponse is the server-to-client envelope, a oneof over the
// response variants of the signaling protocol.
type SignalResponse struct {
	Join                          *JoinResponse
	Offer                         *SessionDescription
	Answer                        *SessionDescription
	Trickle                       *TrickleRequest
	Update                        *ParticipantUpdate
	TrackPublished                *TrackPublished
	Leave                         *LeaveRequest
	Mute                          *MuteTrackRequest
	SpeakersChanged               *SpeakersChanged
	RoomUpdate                    *RoomUpdateInfo
	ConnectionQuality             *ConnectionQualityUpdate
	StreamStateUpdate             *StreamStateUpdate
	SubscribedQualityUpdate       *SubscribedQualityUpdate
	SubscriptionPermissionUpdate  *SubscriptionPermissionUpdate
	RefreshToken                  *RefreshToken
	TrackUnpublished              *TrackUnpublished
	Pong                          *Pong
	ReconnectResponse             *ReconnectResponse
	SubscriptionResponse          *SubscriptionResponse
	RequestResponse               *RequestResponse
	TrackSubscribed               *TrackSubscribed
}

const (
	respJoin                         = 1
	respOffer                        = 2
	respAnswer                       = 3
	respTrickle                      = 4
	respUpdate                       = 5
	respTrackPublished               = 6
	respLeave                        = 7
	respMute                         = 8
	respSpeakersChanged              = 9
	respRoomUpdate                   = 10
	respConnectionQuality            = 11
	respStreamStateUpdate            = 12
	respSubscribedQualityUpdate      = 13
	respSubscriptionPermissionUpdate = 14
	respRefreshToken                 = 15
	respTrackUnpublished             = 16
	respPong                         = 17
	respReconnectResponse            = 18
	respSubscriptionResponse         = 19
	respRequestResponse              = 20
	respTrackSubscribed              = 21
)

// Encode serializes the response to its length-delimited wire form.
func (r SignalResponse) Encode() []byte {
	var b builder
	if r.Join != nil {
		b.message(respJoin, r.Join.encode())
	}
	if r.Offer != nil {
		b.message(respOffer, r.Offer.encode())
	}
	if r.Answer != nil {
		b.message(respAnswer, r.Answer.encode())
	}
	if r.Trickle != nil {
		b.message(respTrickle, r.Trickle.encode())
	}
	if r.Update != nil {
		b.message(respUpdate, r.Update.encode())
	}
	if r.TrackPublished != nil {
		b.message(respTrackPublished, r.TrackPublished.encode())
	}
	if r.Leave != nil {
		b.message(respLeave, r.Leave.encode())
	}
	if r.Mute != nil {
		b.message(respMute, r.Mute.encode())
	}
	if r.SpeakersChanged != nil {
		b.message(respSpeakersChanged, r.SpeakersChanged.encode())
	}
	if r.RoomUpdate != nil {
		b.message(respRoomUpdate, r.RoomUpdate.encode())
	}
	if r.ConnectionQuality != nil {
		b.message(respConnectionQuality, r.ConnectionQuality.encode())
	}
	if r.StreamStateUpdate != nil {
		b.message(respStreamStateUpdate, r.StreamStateUpdate.encode())
	}
	if r.SubscribedQualityUpdate != nil {
		b.message(respSubscribedQualityUpdate, r.SubscribedQualityUpdate.encode())
	}
	if r.SubscriptionPermissionUpdate != nil {
		b.message(respSubscriptionPermissionUpdate, r.SubscriptionPermissionUpdate.encode())
	}
	if r.RefreshToken != nil {
		b.message(respRefreshToken, r.RefreshToken.encode())
	}
	if r.TrackUnpublished != nil {
		b.message(respTrackUnpublished, r.TrackUnpublished.encode())
	}
	if r.Pong != nil {
		b.message(respPong, r.Pong.encode())
	}
	if r.ReconnectResponse != nil {
		b.message(respReconnectResponse, r.ReconnectResponse.encode())
	}
	if r.SubscriptionResponse != nil {
		b.message(respSubscriptionResponse, r.SubscriptionResponse.encode())
	}
	if r.RequestResponse != nil {
		b.message(respRequestResponse, r.RequestResponse.encode())
	}
	if r.TrackSubscribed != nil {
		b.message(respTrackSubscribed, r.TrackSubscribed.encode())
	}
	return b.bytes()
}

// DecodeSignalResponse parses a length-delimited frame into a
// SignalResponse. Unrecognized top-level variants are ignored rather than
// treated as a decode failure, matching DecodeSignalRequest's policy.
func DecodeSignalResponse(data []byte) (SignalResponse, error) {
	var r SignalResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, d []byte) (bool, int) {
		if typ != protowire.BytesType {
			return false, 0
		}
		msg, n := consumeMessage(d)
		if n < 0 {
			return true, n
		}
		var decodeErr error
		switch num {
		case respJoin:
			v, e := decodeJoinResponse(msg)
			r.Join, decodeErr = &v, e
		case respOffer:
			v, e := decodeSessionDescription(msg)
			r.Offer, decodeErr = &v, e
		case respAnswer:
			v, e := decodeSessionDescription(msg)
			r.Answer, decodeErr = &v, e
		case respTrickle:
			v, e := decodeTrickleRequest(msg)
			r.Trickle, decodeErr = &v, e
		case respUpdate:
			v, e := decodeParticipantUpdate(msg)
			r.Update, decodeErr = &v, e
		case respTrackPublished:
			v, e := decodeTrackPublished(msg)
			r.TrackPublished, decodeErr = &v, e
		case respLeave:
			v, e := decodeLeaveRequest(msg)
			r.Leave, decodeErr = &v, e
		case respMute:
			v, e := decodeMuteTrackRequest(msg)
			r.Mute, decodeErr = &v, e
		case respSpeakersChanged:
			v, e := decodeSpeakersChanged(msg)
			r.SpeakersChanged, decodeErr = &v, e
		case respRoomUpdate:
			v, e := decodeRoomUpdateInfo(msg)
			r.RoomUpdate, decodeErr = &v, e
		case respConnectionQuality:
			v, e := decodeConnectionQualityUpdate(msg)
			r.ConnectionQuality, decodeErr = &v, e
		case respStreamStateUpdate:
			v, e := decodeStreamStateUpdate(msg)
			r.StreamStateUpdate, decodeErr = &v, e
		case respSubscribedQualityUpdate:
			v, e := decodeSubscribedQualityUpdate(msg)
			r.SubscribedQualityUpdate, decodeErr = &v, e
		case respSubscriptionPermissionUpdate:
			v, e := decodeSubscriptionPermissionUpdate(msg)
			r.SubscriptionPermissionUpdate, decodeErr = &v, e
		case respRefreshToken:
			v, e := decodeRefreshToken(msg)
			r.RefreshToken, decodeErr = &v, e
		case respTrackUnpublished:
			v, e := decodeTrackUnpublished(msg)
			r.TrackUnpublished, decodeErr = &v, e
		case respPong:
			v, e := decodePong(msg)
			r.Pong, decodeErr = &v, e
		case respReconnectResponse:
			v, e := decodeReconnectResponse(msg)
			r.ReconnectResponse, decodeErr = &v, e
		case respSubscriptionResponse:
			v, e := decodeSubscriptionResponse(msg)
			r.SubscriptionResponse, decodeErr = &v, e
		case respRequestResponse:
			v, e := decodeRequestResponse(msg)
			r.RequestResponse, decodeErr = &v, e
		case respTrackSubscribed:
			v, e := decodeTrackSubscribed(msg)
			r.TrackSubscribed, decodeErr = &v, e
		default:
			return false, 0
		}
		if decodeErr != nil {
			return true, -1
		}
		return true, n
	})
	return r, err
}
