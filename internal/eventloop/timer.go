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

package eventloop

import (
	"sync"
	"time"
)

// Timer is a handle to an armed one-shot or periodic callback.
type Timer struct {
	stop func()
	once sync.Once
}

// Stop cancels the timer. Safe to call more than once, and safe to
// call after the timer has already fired.
func (t *Timer) Stop() {
	t.once.Do(t.stop)
}

// timerSet owns the underlying *time.Timer/*time.Ticker instances and
// funnels every fired callback through a single channel so Loop.Run
// can select on it alongside the task queue and signals.
type timerSet struct {
	fire chan Task
	mu   sync.Mutex
	live map[*Timer]func()
}

func newTimerSet() *timerSet {
	return &timerSet{
		fire: make(chan Task),
		live: make(map[*Timer]func()),
	}
}

func (s *timerSet) after(d time.Duration, fn Task) *Timer {
	stopCh := make(chan struct{})
	h := &Timer{}
	timer := time.AfterFunc(d, func() {
		select {
		case s.fire <- fn:
			// One-shot fired on its own, with nobody holding the
			// handle to Stop it later (e.g. a reconnect backoff timer
			// or a plugin TimerSingle) — forget it now instead of
			// waiting for stopAll at shutdown. Calling forget directly
			// rather than h.Stop avoids a nil h.stop race: this can
			// run before "h.stop = ..." below finishes if d is tiny.
			s.forget(h)
		case <-stopCh:
		}
	})

	h.stop = func() {
		timer.Stop()
		close(stopCh)
		s.forget(h)
	}

	s.mu.Lock()
	s.live[h] = h.stop
	s.mu.Unlock()

	return h
}

func (s *timerSet) tick(d time.Duration, fn Task) *Timer {
	ticker := time.NewTicker(d)
	stopCh := make(chan struct{})
	h := &Timer{}

	go func() {
		for {
			select {
			case <-ticker.C:
				select {
				case s.fire <- fn:
				case <-stopCh:
					return
				}
			case <-stopCh:
				return
			}
		}
	}()

	h.stop = func() {
		ticker.Stop()
		close(stopCh)
		s.forget(h)
	}

	s.mu.Lock()
	s.live[h] = h.stop
	s.mu.Unlock()

	return h
}

// forget drops h from live once it has stopped, so a daemon that arms
// and stops many short-lived timers over its lifetime (PONG timeouts,
// plugin-set timers) doesn't accumulate one map entry per timer ever
// created.
func (s *timerSet) forget(h *Timer) {
	s.mu.Lock()
	delete(s.live, h)
	s.mu.Unlock()
}

func (s *timerSet) stopAll() {
	s.mu.Lock()
	handles := make([]*Timer, 0, len(s.live))
	for h := range s.live {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	// h.Stop() takes s.mu itself via forget, so it must run outside
	// the lock above.
	for _, h := range handles {
		h.Stop()
	}
}
