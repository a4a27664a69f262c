/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package fanout implements listener fan-out and the event task queue: a
// thread-safe listener registry with weak references, and the
// single-threaded queue every listener dispatch runs on.
package fanout

import "sync"

// Queue is the single-threaded cooperative event task queue. Transport
// callbacks and media-engine callbacks post closures here, and they run in
// order on one goroutine. It is not the only goroutine that mutates the
// track model: the session controller's Publish, Unpublish and Mute change
// the track arenas on the caller's goroutine.
type Queue struct {
	tasks chan func()
	closeOnce sync.Once
	done  chan struct{}
}

// NewQueue starts a new event task queue. Callers must Close it when the
// owning Room/SignalingEngine is torn down.
func NewQueue() *Queue {
	q := &Queue{
		tasks: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	for {
		select {
		case fn := <-q.tasks:
			fn()
		case <-q.done:
			return
		}
	}
}

// Post enqueues fn to run on the queue goroutine. Post does not block on fn
// completing; it only blocks if the queue's internal buffer is full. Post is
// a no-op once the queue has been closed.
func (q *Queue) Post(fn func()) {
	select {
	case q.tasks <- fn:
	case <-q.done:
	}
}

// Close stops the queue. Tasks already posted but not yet run are dropped.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}
