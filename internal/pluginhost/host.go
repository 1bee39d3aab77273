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
	"context"

	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/regmap"
)

const (
	errAlreadyLoaded = ircerr.MinPkgPluginHost + iota
	errNotLoaded
	errNoOpenerClaimed
)

// Host owns the set of currently loaded plugins (§3 Plugin, §4.5).
// Like Chain, it is not safe for concurrent use without external
// synchronization — the engine only ever calls it from the dispatch
// loop goroutine.
type Host struct {
	reg     regmap.Registry[string, *Plugin]
	openers []Opener
	log     irclog.Logger
}

// NewHost returns an empty Host.
func NewHost(log irclog.Logger) *Host {
	return &Host{
		reg: regmap.New[string, *Plugin](),
		log: log,
	}
}

// RegisterOpener adds o to the list of openers tried by Load, in
// registration order.
func (h *Host) RegisterOpener(o Opener) {
	h.openers = append(h.openers, o)
}

// Load opens the plugin at path under id, trying each registered
// Opener in turn, and stores the result. It fails if id is already
// loaded or no opener claims path.
func (h *Host) Load(ctx context.Context, id, path string) (*Plugin, error) {
	if h.reg.Has(id) {
		return nil, ircerr.New(errAlreadyLoaded, "plugin already loaded: "+id)
	}

	var lastErr error
	for _, o := range h.openers {
		p, err := o.Open(ctx, id, path)
		if err != nil {
			lastErr = err
			continue
		}

		h.reg.Store(id, p)
		h.log.WithFields(irclog.Fields{"plugin": id, "opener": o.Name()}).Info("plugin loaded")
		return p, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ircerr.New(errNoOpenerClaimed, "no opener claimed plugin path: "+path)
}

// Unload cancels every timer the plugin owns, invokes its onUnload
// callback, and removes it from the registry — in that order, so a
// timer can never fire against a plugin mid-teardown (§4.5 Unload
// ordering). Events already queued for the plugin before Unload was
// called are not retracted; the dispatcher is responsible for not
// handing the plugin new ones after this returns.
func (h *Host) Unload(id string) error {
	p, ok := h.reg.Load(id)
	if !ok {
		return ircerr.New(errNotLoaded, "plugin not loaded: "+id)
	}

	p.StopAllTimers()

	p.mu.Lock()
	onUnload := p.onUnload
	p.mu.Unlock()

	if onUnload != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					h.log.Errorf("plugin %s onUnload panic: %v", id, r)
				}
			}()
			onUnload()
		}()
	}

	h.reg.Delete(id)
	h.log.WithFields(irclog.Fields{"plugin": id}).Info("plugin unloaded")
	return nil
}

// Reload unloads id, then loads it again from path (PLUGIN-RELOAD).
func (h *Host) Reload(ctx context.Context, id, path string) (*Plugin, error) {
	if h.reg.Has(id) {
		if err := h.Unload(id); err != nil {
			return nil, err
		}
	}
	return h.Load(ctx, id, path)
}

// Get returns the loaded plugin for id, if any.
func (h *Host) Get(id string) (*Plugin, bool) {
	return h.reg.Load(id)
}

// List returns the ids of every currently loaded plugin.
func (h *Host) List() []string {
	return h.reg.Keys()
}

// Dispatch calls dispatch for the loaded plugin id, and reports false
// if no such plugin is loaded. Rule-chain filtering happens upstream
// of Host, in the dispatcher: by the time an event reaches here it has
// already been cleared for that plugin (e.g. a Command event targets
// exactly one plugin).
func (h *Host) Dispatch(id string, dispatch func(p *Plugin)) bool {
	p, ok := h.reg.Load(id)
	if !ok {
		return false
	}
	dispatch(p)
	return true
}

// Broadcast calls dispatch for every loaded plugin.
func (h *Host) Broadcast(dispatch func(p *Plugin)) {
	h.reg.Walk(func(_ string, p *Plugin) bool {
		dispatch(p)
		return true
	})
}
