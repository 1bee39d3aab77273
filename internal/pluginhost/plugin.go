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

// Package pluginhost loads, configures, and dispatches events to
// plugins (§4.5, §3 Plugin/Timer). The engine never depends on how a
// Plugin was produced — an Opener capability trait stands in for the
// source's two concrete loaders (native shared object, embedded
// scripting engine); only the native, in-process shape is implemented
// here, per §9's "accept an opaque Plugin implementation" guidance.
package pluginhost

import (
	"runtime/debug"
	"sync"

	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

// Metadata is a Plugin's read-only-after-load identity (§4.5).
type Metadata struct {
	Author  string
	License string
	Summary string
	Version string
}

// Callback is a plugin's handler for one Event kind. It must not
// block (§4.5) and must not panic; a panic is caught, logged with a
// stack trace, and otherwise ignored.
type Callback func(serverfsm.Event)

// Plugin is the engine's in-process view of a loaded plugin (§3
// Plugin). Back-references from a Timer callback resolve the owning
// Plugin by id through the Host, never by held pointer (§9 cyclic
// lifetimes).
type Plugin struct {
	mu sync.Mutex

	id   string
	meta Metadata
	log  irclog.Logger

	options   map[string]string
	templates map[string]string
	paths     map[string]string

	callbacks map[serverfsm.Kind]Callback
	onUnload  func()

	timers   map[string]*Timer
	timerSeq int
}

// NewPlugin returns an empty Plugin record for id. Openers call this
// and then populate metadata/options/callbacks before returning it.
func NewPlugin(id string, log irclog.Logger) *Plugin {
	return &Plugin{
		id:        id,
		log:       log.WithFields(irclog.Fields{"plugin": id}),
		options:   make(map[string]string),
		templates: make(map[string]string),
		paths:     make(map[string]string),
		callbacks: make(map[serverfsm.Kind]Callback),
		timers:    make(map[string]*Timer),
	}
}

// ID returns the plugin's id.
func (p *Plugin) ID() string { return p.id }

// SetMetadata records the plugin's read-only-after-load identity.
func (p *Plugin) SetMetadata(m Metadata) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.meta = m
}

// Metadata returns the plugin's identity block.
func (p *Plugin) Metadata() Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meta
}

// OnEvent registers cb as the plugin's handler for kind, replacing any
// previous registration.
func (p *Plugin) OnEvent(kind serverfsm.Kind, cb Callback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks[kind] = cb
}

// OnUnload registers the callback invoked once, after every timer has
// been cancelled, during Unload (§4.5 Unload ordering).
func (p *Plugin) OnUnload(cb func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUnload = cb
}

// Dispatch delivers ev to the plugin's callback for ev.Kind, if one is
// registered. Panics are recovered, logged with a stack trace, and do
// not propagate (§4.5).
func (p *Plugin) Dispatch(ev serverfsm.Event) {
	p.mu.Lock()
	cb, ok := p.callbacks[ev.Kind]
	log := p.log
	p.mu.Unlock()

	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("callback panic on %s: %v\n%s", ev.Kind, r, debug.Stack())
		}
	}()

	cb(ev)
}

// mapAccessor is the shared get/set/list behaviour behind
// PLUGIN-CONFIG/PLUGIN-TEMPLATE/PLUGIN-PATH, which all share the same
// "id [key [value]]" shape (§4.6).
type mapAccessor struct {
	mu *sync.Mutex
	m  map[string]string
}

func (a mapAccessor) Get(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.m[key]
	return v, ok
}

func (a mapAccessor) Set(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.m[key] = value
}

func (a mapAccessor) List() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]string, len(a.m))
	for k, v := range a.m {
		out[k] = v
	}
	return out
}

// Options, Templates, and Paths expose the three string maps from §3
// Plugin through the shared get/set/list accessor.
func (p *Plugin) Options() mapAccessor   { return mapAccessor{&p.mu, p.options} }
func (p *Plugin) Templates() mapAccessor { return mapAccessor{&p.mu, p.templates} }
func (p *Plugin) Paths() mapAccessor     { return mapAccessor{&p.mu, p.paths} }
