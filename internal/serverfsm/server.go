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

package serverfsm

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/ircmsg"
	"github.com/sabouaram/irccd/internal/ircversion"
	"github.com/sabouaram/irccd/internal/linecodec"
)

const (
	errDialFailed = ircerr.MinPkgServerFSM + iota
	errNotConnected
)

// DefaultKeepaliveInterval and DefaultPongTimeout are the §4.2
// PING/PONG keepalive defaults: send PING after this much silence, and
// consider the connection dead if no PONG follows within the timeout.
const (
	DefaultKeepaliveInterval = 300 * time.Second
	DefaultPongTimeout       = 60 * time.Second
)

// EventSink receives every Event a Server produces.
type EventSink func(Event)

// Server is one IRC network connection and its accumulated protocol
// state (§3 Server, §4.3). All of its methods except Start/Stop are
// expected to run as eventloop.Loop tasks — there is no internal
// locking beyond what is needed to let Start/Stop be called from any
// goroutine.
type Server struct {
	mu sync.Mutex

	cfg config.ServerConfig
	log irclog.Logger
	loop *eventloop.Loop
	emit EventSink
	dial Dialer
	now  func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	state State
	retry int

	conn net.Conn
	dec  *linecodec.Decoder
	enc  *linecodec.Encoder
	queue *linecodec.Queue

	nickname string
	modes    map[byte]byte
	channels map[string]*Channel

	namesAccum map[string]map[string]bool
	whoisAccum map[string]*WhoisInfo

	lastActivity   time.Time
	keepaliveTimer *eventloop.Timer
	pongTimer      *eventloop.Timer

	readGen int
}

// NewServer constructs a Server in the Disconnected state. emit is
// called (on the loop goroutine) for every Event this Server produces.
func NewServer(cfg config.ServerConfig, log irclog.Logger, loop *eventloop.Loop, emit EventSink) *Server {
	return &Server{
		cfg:        cfg,
		log:        log.WithFields(irclog.Fields{"server": cfg.ID}),
		loop:       loop,
		emit:       emit,
		dial:       DefaultDialer,
		now:        time.Now,
		state:      Disconnected,
		modes:      make(map[byte]byte),
		channels:   make(map[string]*Channel),
		namesAccum: make(map[string]map[string]bool),
		whoisAccum: make(map[string]*WhoisInfo),
	}
}

// ID returns the Server's configured id.
func (s *Server) ID() string { return s.cfg.ID }

// SetDialer overrides the transport Dialer, primarily so tests can
// substitute an in-memory net.Pipe() half for a real socket dial.
func (s *Server) SetDialer(d Dialer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dial = d
}

// State reports the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Channels returns a snapshot of currently joined channel names.
func (s *Server) Channels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.channels))
	for n := range s.channels {
		names = append(names, n)
	}

	return names
}

// Nickname returns the Server's current nickname, empty until it has
// connected at least once.
func (s *Server) Nickname() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nickname
}

// ChannelMembers returns a snapshot of name's membership map (nick to
// mode symbol), or nil if the channel is not currently joined. Used by
// SERVER-INFO to report each channel's member list with modes (§4.6).
func (s *Server) ChannelMembers(name string) map[string]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[name]
	if !ok {
		return nil
	}

	out := make(map[string]byte, len(ch.Members))
	for k, v := range ch.Members {
		out[k] = v
	}

	return out
}

// Start begins connecting. Safe to call from any goroutine; the actual
// dial runs on a background goroutine and the rest of the lifecycle
// runs as posted Loop tasks.
func (s *Server) Start(parent context.Context) {
	s.mu.Lock()
	if s.state != Disconnected && s.state != Reconnecting {
		s.mu.Unlock()
		return
	}
	s.state = Connecting
	s.ctx, s.cancel = context.WithCancel(parent)
	ctx := s.ctx
	s.mu.Unlock()

	s.log.Infof("connecting to %s:%d", s.cfg.Host, s.cfg.Port)

	go func() {
		conn, err := s.dial(ctx, s.cfg.Host, s.cfg.Port, s.cfg.TLS)
		s.loop.PostFunc(func() {
			if err != nil {
				s.onDialFailed(err)
				return
			}
			s.onDialed(conn)
		})
	}()
}

// Stop requests a graceful disconnect: QUIT is enqueued, the queue is
// drained, then the transport is closed.
func (s *Server) Stop(quitMessage string) {
	s.loop.PostFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.state == Disconnected {
			return
		}

		s.state = Disconnecting
		if s.queue != nil {
			s.queue.Push("QUIT :" + quitMessage)
			s.flushLocked()
		}
		s.closeLocked()
		s.state = Disconnected
	})
}

// Send enqueues an outbound line and attempts an immediate drain.
func (s *Server) Send(line string) error {
	var err error

	s.mu.Lock()
	if s.queue == nil {
		err = ircerr.New(errNotConnected, fmt.Sprintf("server %s: not connected", s.cfg.ID))
	} else {
		s.queue.Push(line)
		s.flushLocked()
	}
	s.mu.Unlock()

	return err
}

func (s *Server) onDialFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Warnf("connect failed: %v", err)
	s.enterReconnectingLocked(false)
}

func (s *Server) onDialed(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = conn
	s.dec = linecodec.NewDecoder(conn)
	s.enc = linecodec.NewEncoder(conn)
	s.queue = linecodec.NewQueue(s.cfg.RateLimit)
	s.state = Identifying
	s.nickname = s.cfg.Nickname
	s.touchLocked()

	if s.cfg.Password != "" {
		s.queue.Push("PASS " + s.cfg.Password)
	}
	s.queue.Push("NICK " + s.nickname)
	s.queue.Push(fmt.Sprintf("USER %s 0 * :%s", s.cfg.Username, s.cfg.Realname))
	s.flushLocked()

	s.readGen++
	gen := s.readGen
	dec := s.dec

	go s.readLoop(gen, dec)
}

func (s *Server) readLoop(gen int, dec *linecodec.Decoder) {
	for {
		msg, err := dec.ReadMessage()
		if msg.Command != "" {
			s.loop.PostFunc(func() { s.handleLine(gen, msg) })
		}
		if err != nil {
			s.loop.PostFunc(func() { s.onReadError(gen, err) })
			return
		}
	}
}

func (s *Server) onReadError(gen int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.readGen {
		return // stale reader from a prior connection attempt
	}

	if s.state == Disconnecting || s.state == Disconnected {
		return
	}

	s.log.Warnf("connection lost: %v", err)
	s.enterReconnectingLocked(true)
}

func (s *Server) handleLine(gen int, msg ircmsg.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.readGen {
		return
	}

	s.touchLocked()

	switch msg.Command {
	case "PING":
		s.queue.PushFront("PONG :" + msg.Trailing)
		s.flushBypassLocked()
	case "PONG":
		s.cancelPongTimerLocked()
	case "001":
		s.handleWelcomeLocked()
	case "005":
		s.handleISupportLocked(msg)
	case "JOIN":
		s.handleJoinLocked(msg)
	case "PART":
		s.handlePartLocked(msg)
	case "KICK":
		s.handleKickLocked(msg)
	case "QUIT":
		s.handleQuitLocked(msg)
	case "NICK":
		s.handleNickLocked(msg)
	case "MODE":
		s.handleModeLocked(msg)
	case "TOPIC":
		s.handleTopicLocked(msg)
	case "332":
		if len(msg.Params) >= 2 {
			channel := msg.Params[1]
			if ch, ok := s.channels[channel]; ok {
				ch.Topic = msg.Trailing
			}
			s.emit(Event{Kind: EventTopic, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: channel, Text: msg.Trailing})
		}
	case "INVITE":
		s.handleInviteLocked(msg)
	case "NOTICE":
		s.handleNoticeLocked(msg)
	case "PRIVMSG":
		s.handlePrivmsgLocked(msg)
	case "433":
		s.handleNickInUseLocked(msg)
	case "353":
		s.handleNamesReplyLocked(msg)
	case "366":
		s.handleNamesEndLocked(msg)
	case "311":
		s.handleWhoisUserLocked(msg)
	case "312":
		s.handleWhoisServerLocked(msg)
	case "317":
		s.handleWhoisIdleLocked(msg)
	case "319":
		s.handleWhoisChannelsLocked(msg)
	case "318":
		s.handleWhoisEndLocked(msg)
	}
}

func (s *Server) handleWelcomeLocked() {
	s.state = Connected
	s.retry = 0
	s.emit(Event{Kind: EventConnect, ServerID: s.cfg.ID})

	for _, j := range s.cfg.AutoJoin {
		s.sendJoinLocked(j.Channel, j.Password)
	}

	s.armKeepaliveLocked()
}

func (s *Server) sendJoinLocked(channel, password string) {
	if password != "" {
		s.queue.Push("JOIN " + channel + " " + password)
	} else {
		s.queue.Push("JOIN " + channel)
	}
	s.flushLocked()
}

func (s *Server) handleISupportLocked(msg ircmsg.Message) {
	for _, p := range msg.Params {
		if strings.HasPrefix(p, "PREFIX=") {
			s.modes = parsePrefixToken(strings.TrimPrefix(p, "PREFIX="))
			return
		}
	}
}

func (s *Server) handleJoinLocked(msg ircmsg.Message) {
	channel := joinTarget(msg)
	nick := msg.Prefix.Nick

	if isSelf(msg.Prefix.Raw, s.nickname) {
		s.channels[channel] = newChannel(channel)
	} else if ch, ok := s.channels[channel]; ok {
		ch.Members[nick] = 0
	}

	s.emit(Event{Kind: EventJoin, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: channel})
}

func joinTarget(msg ircmsg.Message) string {
	if msg.HasTrail {
		return msg.Trailing
	}
	if len(msg.Params) > 0 {
		return msg.Params[0]
	}
	return ""
}

func (s *Server) handlePartLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}
	channel := msg.Params[0]
	nick := msg.Prefix.Nick

	if isSelf(msg.Prefix.Raw, s.nickname) {
		delete(s.channels, channel)
	} else if ch, ok := s.channels[channel]; ok {
		delete(ch.Members, nick)
	}

	s.emit(Event{Kind: EventPart, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: channel, Text: msg.Trailing})
}

func (s *Server) handleKickLocked(msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		return
	}
	channel, target := msg.Params[0], msg.Params[1]

	if target == s.nickname {
		delete(s.channels, channel)
		if s.cfg.AutoRejoinOnKick {
			s.sendJoinLocked(channel, "")
		}
	} else if ch, ok := s.channels[channel]; ok {
		delete(ch.Members, target)
	}

	s.emit(Event{
		Kind: EventKick, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw,
		Channel: channel, Target: target, Text: msg.Trailing,
	})
}

func (s *Server) handleQuitLocked(msg ircmsg.Message) {
	nick := msg.Prefix.Nick
	for _, ch := range s.channels {
		delete(ch.Members, nick)
	}

	s.emit(Event{Kind: EventDisconnect, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Text: msg.Trailing})
}

func (s *Server) handleNickLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 && !msg.HasTrail {
		return
	}

	oldNick := msg.Prefix.Nick
	newNick := msg.Trailing
	if newNick == "" && len(msg.Params) > 0 {
		newNick = msg.Params[0]
	}

	for _, ch := range s.channels {
		if mode, ok := ch.Members[oldNick]; ok {
			delete(ch.Members, oldNick)
			ch.Members[newNick] = mode
		}
	}

	if isSelf(msg.Prefix.Raw, s.nickname) {
		s.nickname = newNick
	}

	s.emit(Event{Kind: EventNick, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Target: newNick})
}

func (s *Server) handleModeLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}

	rest := strings.Join(msg.Params[1:], " ")
	if msg.HasTrail {
		if rest != "" {
			rest += " "
		}
		rest += msg.Trailing
	}

	s.emit(Event{Kind: EventMode, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: msg.Params[0], Text: rest})
}

func (s *Server) handleTopicLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}
	channel := msg.Params[0]

	if ch, ok := s.channels[channel]; ok {
		ch.Topic = msg.Trailing
	}

	s.emit(Event{Kind: EventTopic, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: channel, Text: msg.Trailing})
}

func (s *Server) handleInviteLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}
	target := msg.Params[0]
	channel := msg.Trailing

	if s.cfg.AutoJoinOnInvite && target == s.nickname {
		s.sendJoinLocked(channel, "")
	}

	s.emit(Event{Kind: EventInvite, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: channel, Target: target})
}

func (s *Server) handleNoticeLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}

	s.emit(Event{Kind: EventNotice, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Target: msg.Params[0], Text: msg.Trailing})
}

func (s *Server) handlePrivmsgLocked(msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		return
	}
	target := msg.Params[0]

	if body, ok := ircmsg.IsAction(msg.Trailing); ok {
		s.emit(Event{Kind: EventMe, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: target, Text: body})
		return
	}

	if keyword, body, ok := ircmsg.IsCTCP(msg.Trailing); ok {
		s.handleCTCPRequestLocked(msg.Prefix, keyword, body)
		return
	}

	// Command-prefix detection is the dispatcher's job (§4.7): a
	// Message whose text matches the prefix grammar also gets a
	// synthesized Command event, but the Message event itself must
	// still reach every other plugin, so this layer never swallows it.
	s.emit(Event{Kind: EventMessage, ServerID: s.cfg.ID, Origin: msg.Prefix.Raw, Channel: target, Text: msg.Trailing})
}

// handleCTCPRequestLocked answers any keyword configured in the
// server's CTCP reply table (VERSION, SOURCE, ...) with an immediate
// CTCP NOTICE, and answers VERSION with the daemon's own version
// string when the table has no VERSION entry (SUPPLEMENTED).
func (s *Server) handleCTCPRequestLocked(prefix ircmsg.Prefix, keyword, _ string) {
	reply, ok := s.cfg.CTCP[keyword]
	if !ok && keyword == "VERSION" {
		reply, ok = ircversion.Current().String(), true
	}
	if !ok || prefix.Nick == "" {
		return
	}

	s.queue.Push("NOTICE " + prefix.Nick + " :" + ircmsg.QuoteCTCP(keyword, reply))
	s.flushLocked()
}

// handleNickInUseLocked retries with a trailing underscore on 433
// ERR_NICKNAMEINUSE during identification (SUPPLEMENTED: the spec
// names this as a required recovery but leaves the exact scheme to
// the implementer).
func (s *Server) handleNickInUseLocked(msg ircmsg.Message) {
	if s.state != Identifying {
		return
	}

	s.nickname += "_"
	s.queue.Push("NICK " + s.nickname)
	s.flushLocked()
}

func (s *Server) handleNamesReplyLocked(msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		return
	}
	channel := msg.Params[len(msg.Params)-1]

	set, ok := s.namesAccum[channel]
	if !ok {
		set = make(map[string]bool)
		s.namesAccum[channel] = set
	}

	for _, nick := range strings.Fields(msg.Trailing) {
		set[cleanPrefix(nick, s.modes)] = true
	}
}

func (s *Server) handleNamesEndLocked(msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		return
	}
	channel := msg.Params[1]

	set, ok := s.namesAccum[channel]
	if !ok {
		return
	}
	delete(s.namesAccum, channel)

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}

	if ch, ok := s.channels[channel]; ok {
		for n := range set {
			if _, already := ch.Members[n]; !already {
				ch.Members[n] = 0
			}
		}
	}

	s.emit(Event{Kind: EventNames, ServerID: s.cfg.ID, Channel: channel, Names: names})
}

func (s *Server) handleWhoisUserLocked(msg ircmsg.Message) {
	// params: [target, nick, user, host, "*"], trailing: realname
	if len(msg.Params) < 4 {
		return
	}

	nick := msg.Params[1]
	s.whoisAccum[nick] = &WhoisInfo{
		Nick:     nick,
		User:     msg.Params[2],
		Host:     msg.Params[3],
		Realname: msg.Trailing,
	}
}

func (s *Server) handleWhoisServerLocked(msg ircmsg.Message) {
	// params: [target, nick, server], trailing: server description
	if len(msg.Params) < 3 {
		return
	}
	nick := msg.Params[1]

	info, ok := s.whoisAccum[nick]
	if !ok {
		return
	}
	info.Server = msg.Params[2]
}

func (s *Server) handleWhoisIdleLocked(msg ircmsg.Message) {
	// params: [target, nick, idle_seconds, (signon_unixtime)], trailing: "seconds idle, signon time"
	if len(msg.Params) < 3 {
		return
	}
	nick := msg.Params[1]

	info, ok := s.whoisAccum[nick]
	if !ok {
		return
	}

	if idle, err := strconv.Atoi(msg.Params[2]); err == nil {
		info.Idle = idle
	}
}

func (s *Server) handleWhoisChannelsLocked(msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		return
	}
	nick := msg.Params[1]

	info, ok := s.whoisAccum[nick]
	if !ok {
		return
	}

	for _, c := range strings.Fields(msg.Trailing) {
		info.Channels = append(info.Channels, cleanPrefix(c, s.modes))
	}
}

func (s *Server) handleWhoisEndLocked(msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		return
	}
	nick := msg.Params[1]

	info, ok := s.whoisAccum[nick]
	if !ok {
		return
	}
	delete(s.whoisAccum, nick)

	s.emit(Event{Kind: EventWhois, ServerID: s.cfg.ID, Whois: *info})
}

func (s *Server) enterReconnectingLocked(wasConnected bool) {
	if wasConnected && (s.state == Connected || s.state == Identifying) {
		s.emit(Event{Kind: EventDisconnect, ServerID: s.cfg.ID})
	}

	s.state = Reconnecting
	s.closeLocked()

	if s.cfg.ReconnectMaxRetries > 0 && s.retry >= s.cfg.ReconnectMaxRetries {
		s.log.Warnf("retry cap reached, staying disconnected")
		s.state = Disconnected
		return
	}

	delay := backoffDelay(
		time.Duration(s.cfg.ReconnectBaseSeconds*float64(time.Second)),
		time.Duration(s.cfg.ReconnectCapSeconds*float64(time.Second)),
		s.retry,
	)
	s.retry++

	s.loop.AfterFunc(delay, func() {
		s.Start(context.Background())
	})
}

func (s *Server) armKeepaliveLocked() {
	s.cancelKeepaliveLocked()

	s.keepaliveTimer = s.loop.TickFunc(DefaultKeepaliveInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.state != Connected {
			return
		}
		if s.now().Sub(s.lastActivity) < DefaultKeepaliveInterval {
			return
		}

		s.queue.Push("PING :" + s.cfg.ID)
		s.flushLocked()
		s.armPongTimeoutLocked()
	})
}

func (s *Server) armPongTimeoutLocked() {
	s.cancelPongTimerLocked()

	s.pongTimer = s.loop.AfterFunc(DefaultPongTimeout, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.log.Warnf("no PONG within timeout, reconnecting")
		s.enterReconnectingLocked(true)
	})
}

func (s *Server) cancelPongTimerLocked() {
	if s.pongTimer != nil {
		s.pongTimer.Stop()
		s.pongTimer = nil
	}
}

func (s *Server) cancelKeepaliveLocked() {
	if s.keepaliveTimer != nil {
		s.keepaliveTimer.Stop()
		s.keepaliveTimer = nil
	}
}

func (s *Server) touchLocked() {
	s.lastActivity = s.now()
}

func (s *Server) flushLocked() {
	if s.enc == nil || s.queue == nil {
		return
	}
	_, _ = s.enc.Drain(s.queue)

	// Lines the rate limit refused stay queued; try again shortly so
	// they still go out at the steady rate without waiting for the
	// next Send.
	if s.queue.Len() > 0 {
		s.loop.AfterFunc(100*time.Millisecond, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.flushLocked()
		})
	}
}

func (s *Server) flushBypassLocked() {
	if s.enc == nil || s.queue == nil {
		return
	}
	_, _ = s.enc.DrainBypass(s.queue)
}

func (s *Server) closeLocked() {
	s.cancelKeepaliveLocked()
	s.cancelPongTimerLocked()
	s.readGen++

	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.dec = nil
	s.enc = nil
	s.queue = nil
	s.channels = make(map[string]*Channel)
	s.namesAccum = make(map[string]map[string]bool)
	s.whoisAccum = make(map[string]*WhoisInfo)
}
