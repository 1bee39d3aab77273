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

package config

import (
	"fmt"

	"github.com/sabouaram/irccd/internal/ircerr"
)

const (
	errDuplicateServer ircerr.CodeError = ircerr.MinPkgConfig + 1
	errDuplicatePlugin ircerr.CodeError = ircerr.MinPkgConfig + 2
	errDuplicateHook   ircerr.CodeError = ircerr.MinPkgConfig + 3
	errInvalidRule     ircerr.CodeError = ircerr.MinPkgConfig + 4
	errMissingControl  ircerr.CodeError = ircerr.MinPkgConfig + 5
)

// Validate enforces the fatal duplicate-id rule from §6: two Servers,
// two Plugins, or two Hooks sharing an id is a configuration error the
// engine refuses to start with, not a warning.
func (c Config) Validate() ircerr.Error {
	seenServer := make(map[string]struct{}, len(c.Servers))
	for _, s := range c.Servers {
		if _, dup := seenServer[s.ID]; dup {
			return ircerr.New(errDuplicateServer.Uint16(), fmt.Sprintf("duplicate server id %q", s.ID))
		}
		seenServer[s.ID] = struct{}{}
	}

	seenPlugin := make(map[string]struct{}, len(c.Plugins))
	for _, p := range c.Plugins {
		if _, dup := seenPlugin[p.ID]; dup {
			return ircerr.New(errDuplicatePlugin.Uint16(), fmt.Sprintf("duplicate plugin id %q", p.ID))
		}
		seenPlugin[p.ID] = struct{}{}
	}

	seenHook := make(map[string]struct{}, len(c.Hooks))
	for _, h := range c.Hooks {
		if _, dup := seenHook[h.Name]; dup {
			return ircerr.New(errDuplicateHook.Uint16(), fmt.Sprintf("duplicate hook name %q", h.Name))
		}
		seenHook[h.Name] = struct{}{}
	}

	for i, r := range c.Rules {
		if r.Action != "accept" && r.Action != "drop" {
			return ircerr.New(errInvalidRule.Uint16(), fmt.Sprintf("rule %d: action must be \"accept\" or \"drop\", got %q", i, r.Action))
		}
	}

	if c.Control.Path == "" {
		return ircerr.New(errMissingControl.Uint16(), "control socket path must not be empty")
	}

	return nil
}
