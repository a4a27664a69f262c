/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package track

import "testing"

func TestLocalArena_AddAndLookup(t *testing.T) {
	arena := NewLocalArena()
	lt := NewLocalTrack("mic", KindAudio, SourceMicrophone, EncryptionNone)

	id := arena.Add(lt)

	got, ok := arena.ByID(id)
	if !ok || got != lt {
		t.Fatal("expected ByID to return the added track")
	}

	got, ok = arena.ByCID(lt.CID())
	if !ok || got != lt {
		t.Fatal("expected ByCID to return the added track")
	}

	if _, ok := arena.BySID("not-yet-assigned"); ok {
		t.Fatal("expected no SID binding before publish ack")
	}
}

func TestLocalArena_DuplicateCIDPanics(t *testing.T) {
	arena := NewLocalArena()
	lt := NewLocalTrack("mic", KindAudio, SourceMicrophone, EncryptionNone)
	arena.Add(lt)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Add to panic on duplicate CID")
		}
	}()
	arena.Add(lt)
}

func TestLocalArena_BindSIDAndUnbind(t *testing.T) {
	arena := NewLocalArena()
	lt := NewLocalTrack("mic", KindAudio, SourceMicrophone, EncryptionNone)
	id := arena.Add(lt)

	if err := arena.BindSID(id, "TA1"); err != nil {
		t.Fatalf("BindSID: %v", err)
	}
	if got, ok := arena.BySID("TA1"); !ok || got != lt {
		t.Fatal("expected BySID lookup to succeed after BindSID")
	}

	if err := arena.Unbind(id); err != nil {
		t.Fatalf("Unbind: %v", err)
	}
	if _, ok := arena.BySID("TA1"); ok {
		t.Error("expected SID index cleared after Unbind")
	}
	if got, ok := arena.ByCID(lt.CID()); !ok || got != lt {
		t.Error("expected track to remain in the arena by CID after Unbind")
	}
}

func TestLocalArena_UnknownIDReturnsNotFound(t *testing.T) {
	arena := NewLocalArena()
	if err := arena.BindSID(ID(999), "x"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := arena.SetMuted(ID(999), true); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalArena_Remove(t *testing.T) {
	arena := NewLocalArena()
	lt := NewLocalTrack("mic", KindAudio, SourceMicrophone, EncryptionNone)
	id := arena.Add(lt)
	arena.BindSID(id, "TA1")

	arena.Remove(id)

	if _, ok := arena.ByID(id); ok {
		t.Error("expected track removed by ID")
	}
	if _, ok := arena.ByCID(lt.CID()); ok {
		t.Error("expected track removed by CID")
	}
	if _, ok := arena.BySID("TA1"); ok {
		t.Error("expected track removed by SID")
	}
}

func TestRemoteArena_AddIsIdempotentPerSID(t *testing.T) {
	arena := NewRemoteArena()
	rt := NewRemoteTrack("TB1", "cam", KindVideo, SourceCamera, EncryptionNone, false)

	id1 := arena.Add(rt)
	id2 := arena.Add(rt)

	if id1 != id2 {
		t.Error("expected adding the same SID twice to return the same ID")
	}
}

func TestRemoteArena_SetMutedReportsChange(t *testing.T) {
	arena := NewRemoteArena()
	rt := NewRemoteTrack("TB1", "cam", KindVideo, SourceCamera, EncryptionNone, false)
	id := arena.Add(rt)

	changed, err := arena.SetMuted(id, true)
	if err != nil {
		t.Fatalf("SetMuted: %v", err)
	}
	if !changed {
		t.Error("expected mute transition to report a change")
	}
	if !rt.Muted() {
		t.Error("expected track to reflect the new mute state")
	}
}
