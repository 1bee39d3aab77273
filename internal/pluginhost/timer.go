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

package pluginhost

import (
	"fmt"
	"time"

	"github.com/sabouaram/irccd/internal/eventloop"
)

// TimerKind distinguishes a PLUGIN-TIMER-SET one-shot from a repeating
// interval timer (§3 Timer).
type TimerKind int

const (
	TimerSingle TimerKind = iota
	TimerRepeat
)

// Timer is a handle to a plugin-owned callback armed on the engine's
// event loop. Plugins never touch *eventloop.Loop directly — Timer is
// the only surface they get, so Unload can always find and cancel
// every outstanding one (§4.5 Unload ordering).
type Timer struct {
	id     string
	kind   TimerKind
	handle *eventloop.Timer
}

// Kind reports whether the timer is one-shot or repeating.
func (t *Timer) Kind() TimerKind { return t.kind }

// Stop cancels the timer. Safe to call more than once.
func (t *Timer) Stop() {
	if t.handle != nil {
		t.handle.Stop()
	}
}

// CreateTimer arms cb on loop, after delay for TimerSingle or every
// delay for TimerRepeat, and registers the resulting Timer under the
// plugin so Unload can cancel it. A panicking cb is caught and logged
// the same way an event Callback is.
func (p *Plugin) CreateTimer(loop *eventloop.Loop, kind TimerKind, delay time.Duration, cb func()) *Timer {
	p.mu.Lock()
	p.timerSeq++
	id := fmt.Sprintf("%s-%d", p.id, p.timerSeq)
	p.mu.Unlock()

	t := &Timer{id: id, kind: kind}

	wrapped := func() {
		defer func() {
			if r := recover(); r != nil {
				p.log.Errorf("timer panic: %v", r)
			}
		}()
		cb()

		if kind == TimerSingle {
			p.removeTimer(id)
		}
	}

	switch kind {
	case TimerRepeat:
		t.handle = loop.TickFunc(delay, wrapped)
	default:
		t.handle = loop.AfterFunc(delay, wrapped)
	}

	p.mu.Lock()
	p.timers[id] = t
	p.mu.Unlock()

	return t
}

func (p *Plugin) removeTimer(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.timers, id)
}

// StopAllTimers cancels every timer the plugin currently owns. It is
// the first step of Unload (§4.5): no timer may fire once unload has
// begun.
func (p *Plugin) StopAllTimers() {
	p.mu.Lock()
	timers := make([]*Timer, 0, len(p.timers))
	for _, t := range p.timers {
		timers = append(timers, t)
	}
	p.timers = make(map[string]*Timer)
	p.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}
