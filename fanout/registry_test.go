/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package fanout

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

type listenerFunc func(int)

func drain(q *Queue) {
	done := make(chan struct{})
	q.Post(func() { close(done) })
	<-done
}

func TestRegistry_NotifyDeliversInOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	reg := NewRegistry[listenerFunc]()

	var mu sync.Mutex
	var got []int

	h := reg.Add(func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer runtime.KeepAlive(h)

	reg.Notify(q, func(l listenerFunc) { l(1) })
	reg.Notify(q, func(l listenerFunc) { l(2) })
	reg.Notify(q, func(l listenerFunc) { l(3) })
	drain(q)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestRegistry_RemoveDuringInvocationSkipsLaterEvents(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	reg := NewRegistry[listenerFunc]()

	var mu sync.Mutex
	var calls int
	var h *Handle[listenerFunc]

	h = reg.Add(func(v int) {
		mu.Lock()
		calls++
		mu.Unlock()
		reg.Remove(h)
	})

	reg.Notify(q, func(l listenerFunc) { l(1) })
	reg.Notify(q, func(l listenerFunc) { l(2) })
	drain(q)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (self-removal must complete its own invocation but skip later ones)", calls)
	}
}

func TestRegistry_AddDuringInvocationSeesNoEarlierEvents(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	reg := NewRegistry[listenerFunc]()

	var mu sync.Mutex
	var secondCalls []int
	var secondHandle *Handle[listenerFunc]

	first := reg.Add(func(v int) {
		if secondHandle == nil {
			secondHandle = reg.Add(func(v2 int) {
				mu.Lock()
				secondCalls = append(secondCalls, v2)
				mu.Unlock()
			})
		}
	})
	defer runtime.KeepAlive(first)
	defer runtime.KeepAlive(secondHandle)

	reg.Notify(q, func(l listenerFunc) { l(1) }) // registers the second listener mid-invocation
	reg.Notify(q, func(l listenerFunc) { l(2) }) // second listener should see only this one
	drain(q)

	mu.Lock()
	defer mu.Unlock()
	if len(secondCalls) != 1 || secondCalls[0] != 2 {
		t.Fatalf("secondCalls = %v, want [2]", secondCalls)
	}
}

func TestRegistry_DroppedHandleIsAutoRemoved(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	reg := NewRegistry[listenerFunc]()

	func() {
		h := reg.Add(func(int) {})
		_ = h
		// h goes out of scope here with no other strong reference.
	}()

	// Give the GC every chance to actually collect the handle.
	for i := 0; i < 5 && reg.Len() > 0; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	if reg.Len() != 0 {
		t.Skip("GC did not collect the handle within the test's budget; weak auto-removal is best-effort")
	}
}

func TestRegistry_RemoveUnknownHandleIsNoop(t *testing.T) {
	reg := NewRegistry[listenerFunc]()
	h := reg.Add(func(int) {})
	reg.Remove(h)
	reg.Remove(h) // second removal must not panic
	runtime.KeepAlive(h)
}
