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
	"github.com/sabouaram/irccd/internal/dispatcher"
	"github.com/sabouaram/irccd/internal/ircerr"
)

// HookAdd implements ctlsocket.Backend (§4.6 HOOK-ADD). A hook already
// registered under name is rejected; HOOK-REMOVE then HOOK-ADD replaces
// one.
func (e *Engine) HookAdd(name, command string) error {
	for _, existing := range e.dispatch.HookNames() {
		if existing == name {
			return ircerr.New(errHookExists, "hook already exists: "+name)
		}
	}
	e.dispatch.RegisterHook(dispatcher.NewHook(name, command, nil))
	return nil
}

// HookList implements ctlsocket.Backend (§4.6 HOOK-LIST).
func (e *Engine) HookList() []string {
	return e.dispatch.HookNames()
}

// HookRemove implements ctlsocket.Backend (§4.6 HOOK-REMOVE).
func (e *Engine) HookRemove(name string) error {
	return e.dispatch.RemoveHook(name)
}
