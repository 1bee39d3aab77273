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

// Package engine is the singleton root the rest of the daemon is built
// from (§3 "Ownership summary"): it owns the set of Servers, the set
// of Plugins, the ordered Rules, the Hooks, the Control Server and the
// Event Loop, and it is the one type that implements
// ctlsocket.Backend, translating every control-socket verb into a call
// on the component that actually owns the state. Every other package
// only knows the slice of the engine it needs; engine is where they
// are finally wired together, the same role config.configModel plays
// for the teacher's component set (Start/Reload/Stop fan-out).
package engine

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/ctlsocket"
	"github.com/sabouaram/irccd/internal/dispatcher"
	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/pluginhost"
	"github.com/sabouaram/irccd/internal/regmap"
	"github.com/sabouaram/irccd/internal/rulechain"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

const (
	errServerNotFound = ircerr.MinPkgEngine + iota
	errServerExists
	errPluginConfigNotFound
	errHookExists
)

// quitMessage is sent on every Server's QUIT line during shutdown
// (§5 "Shutdown is a single signal").
const quitMessage = "bye"

// shutdownDrain is the hard deadline §5 gives Stop to drain server
// command queues before closing transports.
const shutdownDrain = 5 * time.Second

// Engine is the daemon root (§3 Ownership summary). Like Chain, Host
// and Dispatcher, its exported methods other than Start/Stop are only
// safe to call from the event loop goroutine; ctlsocket.Server already
// guarantees that for every Backend call arriving over the control
// socket.
type Engine struct {
	log  irclog.Logger
	loop *eventloop.Loop

	servers regmap.Registry[string, *serverfsm.Server]

	chain   *rulechain.Chain
	plugins *pluginhost.Host
	dispatch *dispatcher.Dispatcher
	control *ctlsocket.Server

	mu          sync.Mutex
	pluginPaths map[string]string
}

// New builds an Engine from cfg and seeds the configured Servers,
// Rules, Hooks and plugin paths. The control socket is constructed but
// not yet listening; call Start to bind it, connect the Servers, load
// the Plugins and begin running.
func New(cfg config.Config, log irclog.Logger) *Engine {
	log = log.WithFields(irclog.Fields{"component": "engine"})
	loop := eventloop.New()

	chain := rulechain.NewChain(ruleConfigsToRules(cfg.Rules))
	plugins := pluginhost.NewHost(log)
	plugins.RegisterOpener(newNativeOpener(loop))

	e := &Engine{
		log:         log,
		loop:        loop,
		servers:     regmap.New[string, *serverfsm.Server](),
		chain:       chain,
		plugins:     plugins,
		pluginPaths: make(map[string]string),
	}

	e.control = ctlsocket.NewServer(cfg.Control, e, log, loop)
	e.dispatch = dispatcher.New(context.Background(), log, chain, plugins, e.control)

	for _, sc := range cfg.Servers {
		e.newServer(sc)
	}
	for _, pc := range cfg.Plugins {
		e.pluginPaths[pc.ID] = pc.Path
	}
	for _, hc := range cfg.Hooks {
		e.dispatch.RegisterHook(dispatcher.NewHook(hc.Name, hc.Command, hc.Args))
	}

	return e
}

// Start binds the control socket, connects every configured Server,
// loads every configured Plugin, installs the SIGINT/SIGTERM handler,
// and runs the event loop. It blocks until Stop is called (directly or
// via signal), so callers typically invoke it from main's goroutine.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.control.Listen(); err != nil {
		return err
	}

	e.loop.HandleSignals(func(_ os.Signal) {
		e.log.Info("shutdown signal received")
		e.Stop()
	})

	e.servers.Walk(func(_ string, s *serverfsm.Server) bool {
		s.Start(ctx)
		return true
	})

	e.loadConfiguredPlugins(ctx)

	e.loop.Run()
	return nil
}

func (e *Engine) loadConfiguredPlugins(ctx context.Context) {
	e.mu.Lock()
	paths := make(map[string]string, len(e.pluginPaths))
	for id, path := range e.pluginPaths {
		paths[id] = path
	}
	e.mu.Unlock()

	for id, path := range paths {
		if _, err := e.plugins.Load(ctx, id, path); err != nil {
			e.log.Errorf("loading configured plugin %s: %v", id, err)
		}
	}
}

// Stop requests QUIT on every Server (each Server drains its own queue
// as part of Stop, §4.3), then schedules the control socket close and
// final loop shutdown after shutdownDrain so any just-queued bytes
// have a chance to flush first (§5 Shutdown). Never blocks the caller.
func (e *Engine) Stop() {
	e.servers.Walk(func(_ string, s *serverfsm.Server) bool {
		s.Stop(quitMessage)
		return true
	})

	e.loop.AfterFunc(shutdownDrain, func() {
		_ = e.control.Close()
		e.loop.Stop()
	})
}

// Loop returns the engine's event loop, for callers (cmd/irccd) that
// need to post additional tasks before Start.
func (e *Engine) Loop() *eventloop.Loop { return e.loop }

func ruleConfigsToRules(rcs []config.RuleConfig) []rulechain.Rule {
	out := make([]rulechain.Rule, 0, len(rcs))
	for _, rc := range rcs {
		action := rulechain.Accept
		if rc.Action == "drop" {
			action = rulechain.Drop
		}
		out = append(out, rulechain.Rule{
			Action:   action,
			Servers:  rc.Servers,
			Channels: rc.Channels,
			Origins:  rc.Origins,
			Plugins:  rc.Plugins,
			Events:   rc.Events,
		})
	}
	return out
}
