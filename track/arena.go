/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package track

import (
	"fmt"
	"sync"
)

// ID is a stable integer key into an Arena. Listeners and senders hold an
// ID, never a direct handle to a track, so there is no ownership cycle
// between senders and tracks: the arena owns the tracks, everything else
// owns integers.
type ID uint64

// ErrNotFound is returned by Arena lookups and mutators when the requested
// ID, CID, or SID has no matching track.
var ErrNotFound = fmt.Errorf("track: not found")

// LocalArena owns every LocalTrack for the lifetime of a Room. It locks
// internally and is mutated both from the event task queue and from the
// application goroutines that call the session controller's Publish,
// Unpublish and Mute.
type LocalArena struct {
	mu      sync.RWMutex
	nextID  ID
	byID    map[ID]*LocalTrack
	byCID   map[string]ID
	bySID   map[string]ID
}

// NewLocalArena creates an empty arena.
func NewLocalArena() *LocalArena {
	return &LocalArena{
		byID:  make(map[ID]*LocalTrack),
		byCID: make(map[string]ID),
		bySID: make(map[string]ID),
	}
}

// Add registers a track and returns its arena ID. The track's CID must be
// unique in the room; Add panics on a duplicate CID
// since that indicates a bug in the caller, not a runtime condition to
// recover from.
func (a *LocalArena) Add(t *LocalTrack) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	cid := t.CID()
	if _, exists := a.byCID[cid]; exists {
		panic(fmt.Sprintf("track: duplicate CID %q added to arena", cid))
	}

	a.nextID++
	id := a.nextID
	a.byID[id] = t
	a.byCID[cid] = id
	return id
}

// Remove deletes a track from the arena.
func (a *LocalArena) Remove(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.byID[id]
	if !ok {
		return
	}
	delete(a.byID, id)
	delete(a.byCID, t.CID())
	if sid := t.SID(); sid != "" {
		delete(a.bySID, sid)
	}
}

// ByID looks up a track by its arena ID.
func (a *LocalArena) ByID(id ID) (*LocalTrack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.byID[id]
	return t, ok
}

// IDByCID looks up a track's arena ID by its client-assigned id.
func (a *LocalArena) IDByCID(cid string) (ID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.byCID[cid]
	return id, ok
}

// ByCID looks up a track by its client-assigned id.
func (a *LocalArena) ByCID(cid string) (*LocalTrack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.byCID[cid]
	if !ok {
		return nil, false
	}
	return a.byID[id], true
}

// BySID looks up a track by its server-assigned id.
func (a *LocalArena) BySID(sid string) (*LocalTrack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.bySID[sid]
	if !ok {
		return nil, false
	}
	return a.byID[id], true
}

// All returns a snapshot slice of every track currently in the arena.
func (a *LocalArena) All() []*LocalTrack {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*LocalTrack, 0, len(a.byID))
	for _, t := range a.byID {
		out = append(out, t)
	}
	return out
}

// BindSID records the server-assigned SID for a track and indexes it for
// BySID lookups. Returns ErrNotFound if id is unknown.
func (a *LocalArena) BindSID(id ID, sid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.byID[id]
	if !ok {
		return ErrNotFound
	}
	t.bindSID(sid)
	a.bySID[sid] = id
	return nil
}

// BindSIDByCID is BindSID keyed by CID instead of arena ID, for callers that
// only have the CID a server response echoed back (e.g. TrackPublished).
func (a *LocalArena) BindSIDByCID(cid, sid string) (ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.byCID[cid]
	if !ok {
		return 0, ErrNotFound
	}
	a.byID[id].bindSID(sid)
	a.bySID[sid] = id
	return id, nil
}

// UnbindByCID is Unbind keyed by CID.
func (a *LocalArena) UnbindByCID(cid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.byCID[cid]
	if !ok {
		return ErrNotFound
	}
	t := a.byID[id]
	if sid := t.SID(); sid != "" {
		delete(a.bySID, sid)
	}
	t.unbind()
	return nil
}

// SetMutedByCID is SetMuted keyed by CID.
func (a *LocalArena) SetMutedByCID(cid string, muted bool) (changed bool, err error) {
	a.mu.RLock()
	id, ok := a.byCID[cid]
	a.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	return a.SetMuted(id, muted)
}

// SetRemoteSideMuteBySID is SetRemoteSideMute keyed by SID.
func (a *LocalArena) SetRemoteSideMuteBySID(sid string, muted bool) (changed bool, err error) {
	a.mu.RLock()
	id, ok := a.bySID[sid]
	a.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	return a.SetRemoteSideMute(id, muted)
}

// BindSender records the outbound sender handle bound to a track.
func (a *LocalArena) BindSender(id ID, sender Sender) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.byID[id]
	if !ok {
		return ErrNotFound
	}
	t.bindSender(sender)
	return nil
}

// Unbind releases the sender and SID for a track, returning it to the
// unpublished state while preserving its CID and arena membership.
func (a *LocalArena) Unbind(id ID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.byID[id]
	if !ok {
		return ErrNotFound
	}
	if sid := t.SID(); sid != "" {
		delete(a.bySID, sid)
	}
	t.unbind()
	return nil
}

// SetMuted sets a track's local mute flag, returning whether it changed.
func (a *LocalArena) SetMuted(id ID, muted bool) (changed bool, err error) {
	a.mu.RLock()
	t, ok := a.byID[id]
	a.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	return t.setMuted(muted), nil
}

// SetRemoteSideMute records a server-observed moderator mute of a local
// track, returning whether it changed.
func (a *LocalArena) SetRemoteSideMute(id ID, muted bool) (changed bool, err error) {
	a.mu.RLock()
	t, ok := a.byID[id]
	a.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	return t.setRemoteSideMute(muted), nil
}

// RemoteArena owns every RemoteTrack observed in a Room, keyed the same way
// as LocalArena.
type RemoteArena struct {
	mu    sync.RWMutex
	nextID ID
	byID  map[ID]*RemoteTrack
	bySID map[string]ID
}

// NewRemoteArena creates an empty arena.
func NewRemoteArena() *RemoteArena {
	return &RemoteArena{
		byID:  make(map[ID]*RemoteTrack),
		bySID: make(map[string]ID),
	}
}

// Add registers a remote track and returns its arena ID.
func (a *RemoteArena) Add(t *RemoteTrack) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	sid := t.SID()
	if existing, exists := a.bySID[sid]; exists {
		return existing
	}

	a.nextID++
	id := a.nextID
	a.byID[id] = t
	a.bySID[sid] = id
	return id
}

// Remove deletes a remote track from the arena.
func (a *RemoteArena) Remove(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.byID[id]
	if !ok {
		return
	}
	delete(a.byID, id)
	delete(a.bySID, t.SID())
}

// ByID looks up a remote track by its arena ID.
func (a *RemoteArena) ByID(id ID) (*RemoteTrack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.byID[id]
	return t, ok
}

// IDBySID looks up a remote track's arena ID by its server-assigned id.
func (a *RemoteArena) IDBySID(sid string) (ID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.bySID[sid]
	return id, ok
}

// BySID looks up a remote track by its server-assigned id.
func (a *RemoteArena) BySID(sid string) (*RemoteTrack, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.bySID[sid]
	if !ok {
		return nil, false
	}
	return a.byID[id], true
}

// All returns a snapshot slice of every remote track currently in the arena.
func (a *RemoteArena) All() []*RemoteTrack {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*RemoteTrack, 0, len(a.byID))
	for _, t := range a.byID {
		out = append(out, t)
	}
	return out
}

// BindReceiver attaches the inbound receiver handle to a remote track.
func (a *RemoteArena) BindReceiver(id ID, r Receiver) error {
	a.mu.RLock()
	t, ok := a.byID[id]
	a.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	t.bindReceiver(r)
	return nil
}

// SetMuted updates a remote track's muted flag, returning whether it changed.
func (a *RemoteArena) SetMuted(id ID, muted bool) (changed bool, err error) {
	a.mu.RLock()
	t, ok := a.byID[id]
	a.mu.RUnlock()
	if !ok {
		return false, ErrNotFound
	}
	return t.setMuted(muted), nil
}
