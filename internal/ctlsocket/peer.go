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

package ctlsocket

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"

	"github.com/sabouaram/irccd/internal/irclog"
)

// outboundCeiling bounds a peer's broadcast backlog (§4.6 Broadcast).
// A peer that cannot keep up is disconnected rather than allowed to
// apply backpressure to the whole engine.
const outboundCeiling = 256

// Peer is one accepted control-socket connection.
type Peer struct {
	conn net.Conn
	log  irclog.Logger

	watching atomic.Bool

	mu     sync.Mutex
	closed bool
	out    chan string
	done   chan struct{}
}

func newPeer(conn net.Conn, log irclog.Logger) *Peer {
	p := &Peer{
		conn: conn,
		log:  log,
		out:  make(chan string, outboundCeiling),
		done: make(chan struct{}),
	}
	go p.writeLoop()
	return p
}

// IsWatching reports whether the peer issued WATCH.
func (p *Peer) IsWatching() bool { return p.watching.Load() }

// SetWatching marks the peer as subscribed to broadcast events.
func (p *Peer) SetWatching(v bool) { p.watching.Store(v) }

// RemoteAddr returns the peer's address, useful for logging (a Unix
// socket peer's address is usually unnamed, but net.Conn still gives a
// stable value to log).
func (p *Peer) RemoteAddr() net.Addr { return p.conn.RemoteAddr() }

// send enqueues line (without its trailing newline) for delivery. If
// the peer's outbound buffer is full, the peer is disconnected instead
// of blocking the caller — this method runs on the loop goroutine
// (and on the accept goroutine for the greeting), so blocking here
// could stall the whole engine.
func (p *Peer) send(line string) {
	select {
	case p.out <- line:
	default:
		p.log.Warnf("peer outbound buffer full, disconnecting")
		p.Close()
	}
}

func (p *Peer) writeLoop() {
	w := bufio.NewWriter(p.conn)
	for {
		select {
		case line, ok := <-p.out:
			if !ok {
				return
			}
			if _, err := w.WriteString(line + "\n"); err != nil {
				p.Close()
				return
			}
			if err := w.Flush(); err != nil {
				p.Close()
				return
			}
		case <-p.done:
			return
		}
	}
}

// Close tears down the peer's connection and stops its write loop.
// Safe to call more than once.
func (p *Peer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	_ = p.conn.Close()
}
