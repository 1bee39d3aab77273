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

	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/pluginhost"
)

func (e *Engine) plugin(id string) (*pluginhost.Plugin, error) {
	p, ok := e.plugins.Get(id)
	if !ok {
		return nil, ircerr.New(errPluginConfigNotFound, "plugin not loaded: "+id)
	}
	return p, nil
}

func (e *Engine) pluginPath(id string) (string, error) {
	e.mu.Lock()
	path, ok := e.pluginPaths[id]
	e.mu.Unlock()

	if !ok {
		return "", ircerr.New(errPluginConfigNotFound, "no configured path for plugin: "+id)
	}
	return path, nil
}

// PluginConfigGet implements ctlsocket.Backend (§4.6 PLUGIN-CONFIG).
func (e *Engine) PluginConfigGet(id, key string) (string, bool, error) {
	p, err := e.plugin(id)
	if err != nil {
		return "", false, err
	}
	v, ok := p.Options().Get(key)
	return v, ok, nil
}

// PluginConfigSet implements ctlsocket.Backend (§4.6 PLUGIN-CONFIG).
func (e *Engine) PluginConfigSet(id, key, value string) error {
	p, err := e.plugin(id)
	if err != nil {
		return err
	}
	p.Options().Set(key, value)
	return nil
}

// PluginConfigList implements ctlsocket.Backend (§4.6 PLUGIN-CONFIG).
func (e *Engine) PluginConfigList(id string) (map[string]string, error) {
	p, err := e.plugin(id)
	if err != nil {
		return nil, err
	}
	return p.Options().List(), nil
}

// PluginPathGet implements ctlsocket.Backend (§4.6 PLUGIN-PATH).
func (e *Engine) PluginPathGet(id, key string) (string, bool, error) {
	p, err := e.plugin(id)
	if err != nil {
		return "", false, err
	}
	v, ok := p.Paths().Get(key)
	return v, ok, nil
}

// PluginPathSet implements ctlsocket.Backend (§4.6 PLUGIN-PATH).
func (e *Engine) PluginPathSet(id, key, value string) error {
	p, err := e.plugin(id)
	if err != nil {
		return err
	}
	p.Paths().Set(key, value)
	return nil
}

// PluginPathList implements ctlsocket.Backend (§4.6 PLUGIN-PATH).
func (e *Engine) PluginPathList(id string) (map[string]string, error) {
	p, err := e.plugin(id)
	if err != nil {
		return nil, err
	}
	return p.Paths().List(), nil
}

// PluginTemplateGet implements ctlsocket.Backend (§4.6 PLUGIN-TEMPLATE).
func (e *Engine) PluginTemplateGet(id, key string) (string, bool, error) {
	p, err := e.plugin(id)
	if err != nil {
		return "", false, err
	}
	v, ok := p.Templates().Get(key)
	return v, ok, nil
}

// PluginTemplateSet implements ctlsocket.Backend (§4.6 PLUGIN-TEMPLATE).
func (e *Engine) PluginTemplateSet(id, key, value string) error {
	p, err := e.plugin(id)
	if err != nil {
		return err
	}
	p.Templates().Set(key, value)
	return nil
}

// PluginTemplateList implements ctlsocket.Backend (§4.6 PLUGIN-TEMPLATE).
func (e *Engine) PluginTemplateList(id string) (map[string]string, error) {
	p, err := e.plugin(id)
	if err != nil {
		return nil, err
	}
	return p.Templates().List(), nil
}

// PluginInfo implements ctlsocket.Backend (§4.6 PLUGIN-INFO).
func (e *Engine) PluginInfo(id string) (pluginhost.Metadata, error) {
	p, err := e.plugin(id)
	if err != nil {
		return pluginhost.Metadata{}, err
	}
	return p.Metadata(), nil
}

// PluginList implements ctlsocket.Backend (§4.6 PLUGIN-LIST).
func (e *Engine) PluginList() []string {
	return e.plugins.List()
}

// PluginLoad implements ctlsocket.Backend (§4.6 PLUGIN-LOAD). The load
// path is the one recorded for id in the engine's config-seeded
// id-to-path map; PluginPathSet mutates a plugin's own path map (§3
// Plugin) and has no effect on this one.
func (e *Engine) PluginLoad(id string) error {
	path, err := e.pluginPath(id)
	if err != nil {
		return err
	}
	_, err = e.plugins.Load(context.Background(), id, path)
	return err
}

// PluginReload implements ctlsocket.Backend (§4.6 PLUGIN-RELOAD).
func (e *Engine) PluginReload(id string) error {
	path, err := e.pluginPath(id)
	if err != nil {
		return err
	}
	_, err = e.plugins.Reload(context.Background(), id, path)
	return err
}

// PluginUnload implements ctlsocket.Backend (§4.6 PLUGIN-UNLOAD).
func (e *Engine) PluginUnload(id string) error {
	return e.plugins.Unload(id)
}
