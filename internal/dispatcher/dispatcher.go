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

// Package dispatcher implements the engine's event fan-out (§4.7): for
// every event a Server emits, broadcast it to watching control-socket
// peers, spawn every Hook, then run each loaded Plugin's callback
// through the rule chain. It is the one component that imports
// serverfsm, rulechain, pluginhost and ctlsocket together; every other
// package only knows about the subset it needs.
package dispatcher

import (
	"context"
	"sync"

	"github.com/sabouaram/irccd/internal/ctlsocket"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/pluginhost"
	"github.com/sabouaram/irccd/internal/regmap"
	"github.com/sabouaram/irccd/internal/rulechain"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

const (
	errHookNotFound = ircerr.MinPkgDispatcher + iota
)

// Broadcaster is the control-socket surface the Dispatcher needs:
// fan-out to watching peers. Satisfied by *ctlsocket.Server; kept as
// an interface so a unit test can stand in a recorder instead of a
// real socket.
type Broadcaster interface {
	Broadcast(ev serverfsm.Event)
}

// Dispatcher wires one engine's Servers, Chain, Host, Hooks and
// control socket together (§4.7). It is not safe for concurrent use
// without external synchronization: like Chain and Host, the engine
// only ever calls it from the event loop goroutine.
type Dispatcher struct {
	log     irclog.Logger
	ctx     context.Context
	chain   *rulechain.Chain
	plugins *pluginhost.Host
	control Broadcaster
	hooks   regmap.Registry[string, *Hook]

	mu       sync.RWMutex
	prefixes map[string]string
}

// New returns a Dispatcher. ctx bounds the lifetime of every hook
// process spawned through it; cancelling ctx terminates any hook still
// running (the dispatcher itself never waits on one).
func New(ctx context.Context, log irclog.Logger, chain *rulechain.Chain, plugins *pluginhost.Host, control Broadcaster) *Dispatcher {
	return &Dispatcher{
		log:      log.WithFields(irclog.Fields{"component": "dispatcher"}),
		ctx:      ctx,
		chain:    chain,
		plugins:  plugins,
		control:  control,
		hooks:    regmap.New[string, *Hook](),
		prefixes: make(map[string]string),
	}
}

// SetCommandPrefix records the command prefix configured for a server
// (§3 ServerConfig.CommandPrefix), consulted when a Message event from
// that server is checked for Command-event synthesis.
func (d *Dispatcher) SetCommandPrefix(serverID, prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prefixes[serverID] = prefix
}

func (d *Dispatcher) commandPrefix(serverID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.prefixes[serverID]
}

// RegisterHook adds or replaces a hook by name (HOOK-ADD).
func (d *Dispatcher) RegisterHook(h *Hook) {
	d.hooks.Store(h.Name(), h)
}

// RemoveHook deletes a hook by name (HOOK-REMOVE). It is an error to
// remove a name that was never registered.
func (d *Dispatcher) RemoveHook(name string) error {
	if !d.hooks.Has(name) {
		return ircerr.New(errHookNotFound, "hook not found: "+name)
	}
	d.hooks.Delete(name)
	return nil
}

// HookNames lists every registered hook (HOOK-LIST).
func (d *Dispatcher) HookNames() []string {
	return d.hooks.Keys()
}

// Dispatch runs the full §4.7 pipeline for ev: broadcast once, spawn
// every hook once, then deliver to each loaded plugin. If ev is a
// Message whose text matches the originating server's command prefix
// grammar, the named plugin is rewritten to receive a synthesized
// Command event in place of the Message (§8 scenario 2: "plugin ...
// does NOT also receive the underlying Message event... Command is
// emitted in lieu of Message for the targeted plugin"); every other
// plugin still gets the original Message, subject to its own rule
// match.
func (d *Dispatcher) Dispatch(ev serverfsm.Event) {
	if d.control != nil {
		d.control.Broadcast(ev)
	}

	fields := ctlsocket.EventFields(ev)
	d.hooks.Walk(func(_ string, h *Hook) bool {
		h.Spawn(d.ctx, d.log, fields)
		return true
	})

	targetID, cmd, hasCommand := d.commandFor(ev)

	d.plugins.Broadcast(func(p *pluginhost.Plugin) {
		if hasCommand && p.ID() == targetID {
			d.deliver(p, cmd)
			return
		}
		d.deliver(p, ev)
	})
}

// commandFor reports the Command event synthesized from ev, if ev is
// a Message whose text matches ev.ServerID's configured command
// prefix (GLOSSARY "Command (event)").
func (d *Dispatcher) commandFor(ev serverfsm.Event) (pluginID string, cmd serverfsm.Event, ok bool) {
	if ev.Kind != serverfsm.EventMessage {
		return "", serverfsm.Event{}, false
	}

	prefix := d.commandPrefix(ev.ServerID)
	pluginID, rest, ok := splitCommand(prefix, ev.Text)
	if !ok {
		return "", serverfsm.Event{}, false
	}

	cmd = ev
	cmd.Kind = serverfsm.EventCommand
	cmd.PluginID = pluginID
	cmd.Text = rest
	return pluginID, cmd, true
}

func (d *Dispatcher) deliver(p *pluginhost.Plugin, ev serverfsm.Event) {
	match := rulechain.MatchEvent{
		ServerID: ev.ServerID,
		Channel:  ev.Channel,
		Origin:   ev.Origin,
		Kind:     ev.Kind.String(),
	}

	if d.chain.Evaluate(match, p.ID()) != rulechain.Accept {
		return
	}

	p.Dispatch(ev)
}
