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
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

const (
	errBindFailed = ircerr.MinPkgControlSock + iota
)

// ProtocolVersion is sent as the server's greeting on every accept
// (§4.6): "IRCCD <major>.<minor>.<patch>".
var ProtocolVersion = [3]int{1, 0, 0}

// Server is the Unix-domain control socket (§4.6). Every verb handler
// runs as a task on loop, so it can safely call into Backend alongside
// every other engine mutation.
type Server struct {
	cfg     config.ControlConfig
	backend Backend
	log     irclog.Logger
	loop    *eventloop.Loop

	ln net.Listener

	mu    sync.Mutex
	peers map[*Peer]struct{}

	verbs map[string]verbFunc
}

type verbFunc func(s *Server, rest string) string

// NewServer constructs a control Server bound to cfg.Path once Listen
// is called.
func NewServer(cfg config.ControlConfig, backend Backend, log irclog.Logger, loop *eventloop.Loop) *Server {
	s := &Server{
		cfg:     cfg,
		backend: backend,
		log:     log.WithFields(irclog.Fields{"component": "ctlsocket"}),
		loop:    loop,
		peers:   make(map[*Peer]struct{}),
	}
	s.verbs = s.buildVerbTable()
	return s
}

// Listen unlinks any stale socket file at cfg.Path, binds a new
// Unix-domain listener there, applies the configured mode, chowns it
// if uid/gid were supplied, and starts the accept loop in the
// background (§4.6).
func (s *Server) Listen() error {
	if err := os.Remove(s.cfg.Path); err != nil && !os.IsNotExist(err) {
		return ircerr.New(errBindFailed, "unlink stale control socket", err)
	}

	ln, err := net.Listen("unix", s.cfg.Path)
	if err != nil {
		return ircerr.New(errBindFailed, "bind control socket", err)
	}

	mode := os.FileMode(0o660)
	if s.cfg.Mode != 0 {
		mode = os.FileMode(s.cfg.Mode)
	}
	if err := os.Chmod(s.cfg.Path, mode); err != nil {
		_ = ln.Close()
		return ircerr.New(errBindFailed, "chmod control socket", err)
	}

	if s.cfg.Uid != 0 || s.cfg.Gid != 0 {
		if err := os.Chown(s.cfg.Path, s.cfg.Uid, s.cfg.Gid); err != nil {
			_ = ln.Close()
			return ircerr.New(errBindFailed, "chown control socket", err)
		}
	}

	s.ln = ln
	go s.acceptLoop()

	return nil
}

// Close stops accepting new connections and closes every peer.
func (s *Server) Close() error {
	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}

	s.mu.Lock()
	peers := make([]*Peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}

	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.acceptConn(conn)
	}
}

func (s *Server) acceptConn(conn net.Conn) {
	peer := newPeer(conn, s.log)

	s.mu.Lock()
	s.peers[peer] = struct{}{}
	s.mu.Unlock()

	if pid, uid, gid, ok := peerCredentials(conn); ok {
		s.log.WithFields(irclog.Fields{"pid": pid, "uid": uid, "gid": gid}).Debug("peer connected")
	}

	greeting := fmt.Sprintf("IRCCD %d.%d.%d", ProtocolVersion[0], ProtocolVersion[1], ProtocolVersion[2])
	peer.send(greeting)

	go s.readLoop(peer, conn)
}

func (s *Server) readLoop(peer *Peer, conn net.Conn) {
	defer s.dropPeer(peer)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		done := make(chan struct{})
		s.loop.PostFunc(func() {
			defer close(done)
			s.handleLine(peer, line)
		})
		<-done
	}
}

func (s *Server) dropPeer(peer *Peer) {
	s.mu.Lock()
	delete(s.peers, peer)
	s.mu.Unlock()
	peer.Close()
}

func (s *Server) handleLine(peer *Peer, line string) {
	if line == "" {
		return
	}

	verb, rest := splitVerb(line)

	if verb == "WATCH" {
		peer.SetWatching(true)
		peer.send("OK")
		return
	}

	fn, ok := s.verbs[verb]
	if !ok {
		peer.send("ERROR command not found")
		return
	}

	reply := fn(s, rest)
	peer.send(reply)
}

// Broadcast serializes ev and sends it to every peer currently
// watching (§4.6, §4.7 step 1). Must be called from the loop
// goroutine, same as every other engine mutation.
func (s *Server) Broadcast(ev serverfsm.Event) {
	line := SerializeEvent(ev)

	s.mu.Lock()
	defer s.mu.Unlock()

	for p := range s.peers {
		if p.IsWatching() {
			p.send(line)
		}
	}
}

func ok() string { return "OK" }

func okList(count int, payload string) string {
	if payload == "" {
		return fmt.Sprintf("OK %d", count)
	}
	return fmt.Sprintf("OK %d\n%s", count, payload)
}

// okNames renders a single-line "OK name1 name2 ..." reply, used for the
// id-list verbs (HOOK-LIST, PLUGIN-LIST, SERVER-LIST). Unlike okList it
// carries no leading count, so the client's reply framing (which only
// reads follow-up lines when the status line parses as "OK <n>") treats
// it as a one-line reply instead of expecting len(names) more lines.
func okNames(names []string) string {
	if len(names) == 0 {
		return "OK"
	}
	return "OK " + strings.Join(names, " ")
}

func errf(format string, args ...interface{}) string {
	return "ERROR " + fmt.Sprintf(format, args...)
}
