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

package linecodec

import (
	"container/list"
	"sync"
	"time"
)

// DefaultRateLimit is the recommended steady-state outbound rate from
// §4.2 when a Server leaves RateLimit unset: at most 2 lines/second.
const DefaultRateLimit = 2.0

// Queue is a per-server FIFO of outbound IRC lines, drained at a
// sliding-window rate limit. PushFront puts a line (a PONG reply) ahead
// of everything queued, and PopBypass takes the head line without
// consulting the limit.
type Queue struct {
	mu    sync.Mutex
	lines *list.List

	rate   float64       // messages per second
	window time.Duration // sliding window width
	sent   []time.Time   // send timestamps still inside window
	now    func() time.Time
}

// NewQueue returns an empty Queue with the given steady-state rate
// (messages/second). A non-positive rate falls back to DefaultRateLimit.
func NewQueue(rate float64) *Queue {
	return NewQueueWindow(rate, time.Second)
}

// NewQueueWindow is NewQueue with an explicit sliding-window width,
// mainly so tests can shrink the window below a second instead of
// sleeping a full second per assertion.
func NewQueueWindow(rate float64, window time.Duration) *Queue {
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	if window <= 0 {
		window = time.Second
	}

	return &Queue{
		lines:  list.New(),
		rate:   rate,
		window: window,
		now:    time.Now,
	}
}

// Push appends line to the back of the queue (normal FIFO order).
func (q *Queue) Push(line string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.lines.PushBack(line)
}

// PushFront inserts line at the head of the queue, ahead of everything
// already queued — used for PONG replies per §4.2's keepalive rule.
func (q *Queue) PushFront(line string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.lines.PushFront(line)
}

// Len reports how many lines are currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.lines.Len()
}

// popFront removes and returns the line at the head of the queue
// without touching the rate-limit window. The caller holds mu; Pop and
// PopBypass decide whether the rate limit applies.
func (q *Queue) popFront() (string, bool) {
	e := q.lines.Front()
	if e == nil {
		return "", false
	}

	q.lines.Remove(e)
	return e.Value.(string), true
}

// Pop removes and returns the next line to send, if the rate limit
// currently permits a send. ok is false when the queue is empty or the
// rate limit disallows a send right now.
func (q *Queue) Pop() (line string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lines.Len() == 0 {
		return "", false
	}

	if !q.allow() {
		return "", false
	}

	line, ok = q.popFront()
	if ok {
		q.record()
	}

	return line, ok
}

// PopBypass removes and returns the line at the head of the queue
// regardless of the rate limit. Used for front-of-queue PONG replies,
// which bypass the limit for exactly one line (§4.2).
func (q *Queue) PopBypass() (line string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.popFront()
}

func (q *Queue) allow() bool {
	now := q.now()
	cutoff := now.Add(-q.window)

	kept := q.sent[:0]
	for _, t := range q.sent {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	q.sent = kept

	return float64(len(q.sent)) < q.rate
}

func (q *Queue) record() {
	q.sent = append(q.sent, q.now())
}
