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

package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/ctlsocket"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

// newServer seeds a Server from cfg, wires its CommandPrefix into the
// dispatcher, and registers it under cfg.ID without starting it — the
// caller (New at load time, ServerConnect at runtime) decides when to
// dial.
func (e *Engine) newServer(cfg config.ServerConfig) *serverfsm.Server {
	// Server.handleLine holds its own mutex across the handler that
	// produces ev, so Dispatch must run as a separate, later task on
	// the loop rather than inline: a plugin hook reacting to ev by
	// calling straight back into this same server (e.g. SERVER-MESSAGE
	// on an auto-reply) would otherwise re-lock a mutex this goroutine
	// already holds and deadlock the whole daemon.
	s := serverfsm.NewServer(cfg, e.log, e.loop, func(ev serverfsm.Event) {
		e.loop.PostFunc(func() { e.dispatch.Dispatch(ev) })
	})
	e.servers.Store(cfg.ID, s)
	e.dispatch.SetCommandPrefix(cfg.ID, cfg.CommandPrefix)
	return s
}

func (e *Engine) server(id string) (*serverfsm.Server, error) {
	s, ok := e.servers.Load(id)
	if !ok {
		return nil, ircerr.New(errServerNotFound, "server not found: "+id)
	}
	return s, nil
}

// ServerConnect implements ctlsocket.Backend (§4.6 SERVER-CONNECT): it
// registers a new Server under id and starts connecting. A server
// already known under id is rejected; use ServerReconnect to redial an
// existing one.
func (e *Engine) ServerConnect(id, host string, port int, useTLS bool, nick, user, realname string) error {
	if e.servers.Has(id) {
		return ircerr.New(errServerExists, "server already exists: "+id)
	}

	s := e.newServer(config.ServerConfig{
		ID:       id,
		Host:     host,
		Port:     port,
		TLS:      useTLS,
		Nickname: nick,
		Username: user,
		Realname: realname,
	})
	s.Start(context.Background())
	return nil
}

// ServerDisconnect implements ctlsocket.Backend (§4.6 SERVER-DISCONNECT).
func (e *Engine) ServerDisconnect(id string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	s.Stop(quitMessage)
	return nil
}

// ServerReconnect implements ctlsocket.Backend (§4.6 SERVER-RECONNECT):
// forces a disconnect-then-reconnect regardless of the Server's current
// state, bypassing the normal Reconnecting backoff.
func (e *Engine) ServerReconnect(id string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	s.Stop(quitMessage)
	s.Start(context.Background())
	return nil
}

// ServerList implements ctlsocket.Backend (§4.6 SERVER-LIST).
func (e *Engine) ServerList() []string {
	return e.servers.Keys()
}

// ServerInfo implements ctlsocket.Backend (§4.6 SERVER-INFO).
func (e *Engine) ServerInfo(id string) (ctlsocket.ServerInfo, error) {
	s, err := e.server(id)
	if err != nil {
		return ctlsocket.ServerInfo{}, err
	}

	names := s.Channels()
	channels := make([]ctlsocket.ChannelInfo, 0, len(names))
	for _, name := range names {
		channels = append(channels, ctlsocket.ChannelInfo{
			Name:    name,
			Members: s.ChannelMembers(name),
		})
	}

	return ctlsocket.ServerInfo{
		ID:       s.ID(),
		Nickname: s.Nickname(),
		State:    s.State().String(),
		Channels: channels,
	}, nil
}

// ServerJoin implements ctlsocket.Backend (§4.6 SERVER-JOIN).
func (e *Engine) ServerJoin(id, channel, password string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	if password != "" {
		return s.Send("JOIN " + channel + " " + password)
	}
	return s.Send("JOIN " + channel)
}

// ServerPart implements ctlsocket.Backend (§4.6 SERVER-PART).
func (e *Engine) ServerPart(id, channel, reason string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	if reason != "" {
		return s.Send("PART " + channel + " :" + reason)
	}
	return s.Send("PART " + channel)
}

// ServerKick implements ctlsocket.Backend (§4.6 SERVER-KICK).
func (e *Engine) ServerKick(id, channel, target, reason string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	if reason != "" {
		return s.Send("KICK " + channel + " " + target + " :" + reason)
	}
	return s.Send("KICK " + channel + " " + target)
}

// ServerInvite implements ctlsocket.Backend (§4.6 SERVER-INVITE).
func (e *Engine) ServerInvite(id, channel, target string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	return s.Send("INVITE " + target + " " + channel)
}

// ServerMode implements ctlsocket.Backend (§4.6 SERVER-MODE).
func (e *Engine) ServerMode(id, channel, mode string, args []string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	line := "MODE " + channel + " " + mode
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	return s.Send(line)
}

// ServerTopic implements ctlsocket.Backend (§4.6 SERVER-TOPIC).
func (e *Engine) ServerTopic(id, channel, topic string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	return s.Send("TOPIC " + channel + " :" + topic)
}

// ServerMessage implements ctlsocket.Backend (§4.6 SERVER-MESSAGE).
func (e *Engine) ServerMessage(id, target, message string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	return s.Send("PRIVMSG " + target + " :" + message)
}

// ServerNotice implements ctlsocket.Backend (§4.6 SERVER-NOTICE).
func (e *Engine) ServerNotice(id, target, message string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	return s.Send("NOTICE " + target + " :" + message)
}

// ServerMe implements ctlsocket.Backend (§4.6 SERVER-ME): a CTCP ACTION,
// the conventional "/me" form.
func (e *Engine) ServerMe(id, target, message string) error {
	s, err := e.server(id)
	if err != nil {
		return err
	}
	return s.Send(fmt.Sprintf("PRIVMSG %s :\x01ACTION %s\x01", target, message))
}
