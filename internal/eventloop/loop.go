/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package eventloop is the engine's single-goroutine reactor (§4.1).
// The original readiness-poll-over-file-descriptors design doesn't
// translate directly into idiomatic Go — there is no portable,
// non-blocking multi-fd poll primitive at this layer — so it is
// rendered instead as a fan-in channel loop: every source (a Server's
// reader goroutine, a timer, a deferred closure, a signal) posts a
// task onto one channel, and a single goroutine drains that channel
// and runs each task to completion before taking the next. This keeps
// the spec's central invariant — every engine mutation happens on one
// logical thread, so no two callbacks ever race — without needing a
// real poll(2)/epoll(7) binding.
package eventloop

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Task is a unit of work run on the loop's goroutine.
type Task func()

// Loop is the engine's reactor. All engine state must only be touched
// from inside a Task run by this Loop.
type Loop struct {
	tasks   chan Task
	timers  *timerSet
	done    chan struct{}
	closed  atomic.Bool
	wg      sync.WaitGroup
	sigCh   chan os.Signal
	onSig   func(os.Signal)
}

// New returns a Loop with an unbounded-in-practice task queue (buffered
// deep enough that posting never blocks a reader goroutine under
// normal load; callers posting faster than the loop can drain are a
// capacity-planning problem, not a correctness one).
func New() *Loop {
	return &Loop{
		tasks:  make(chan Task, 4096),
		timers: newTimerSet(),
		done:   make(chan struct{}),
	}
}

// PostFunc schedules fn to run on the loop goroutine. Safe to call from
// any goroutine, including from within a Task itself (a deferred
// closure, per §4.1).
func (l *Loop) PostFunc(fn Task) {
	if l.closed.Load() {
		return
	}

	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// HandleSignals installs fn as the handler invoked (on the loop
// goroutine) when SIGINT or SIGTERM is received, and masks SIGPIPE so a
// dropped peer never terminates the daemon (§6).
func (l *Loop) HandleSignals(fn func(os.Signal)) {
	l.onSig = fn
	l.sigCh = make(chan os.Signal, 2)
	signal.Notify(l.sigCh, syscall.SIGINT, syscall.SIGTERM)
	signal.Ignore(syscall.SIGPIPE)
}

// Run drains tasks and fired timers until Stop is called. It blocks
// the calling goroutine and should be invoked exactly once.
func (l *Loop) Run() {
	for {
		select {
		case t, ok := <-l.tasks:
			if !ok {
				return
			}
			t()

		case fired := <-l.timers.fire:
			fired()

		case sig := <-l.sigCh:
			if l.onSig != nil {
				l.onSig(sig)
			}

		case <-l.done:
			return
		}
	}
}

// Stop requests the loop to terminate. Safe to call more than once or
// concurrently with Run.
func (l *Loop) Stop() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.done)
		l.timers.stopAll()
		if l.sigCh != nil {
			signal.Stop(l.sigCh)
		}
	}
}

// AfterFunc arms a one-shot timer that posts fn to the loop after d.
// It returns a handle whose Stop cancels the timer if it has not yet
// fired.
func (l *Loop) AfterFunc(d time.Duration, fn Task) *Timer {
	return l.timers.after(d, fn)
}

// TickFunc arms a periodic timer that posts fn to the loop every d
// until stopped.
func (l *Loop) TickFunc(d time.Duration, fn Task) *Timer {
	return l.timers.tick(d, fn)
}
