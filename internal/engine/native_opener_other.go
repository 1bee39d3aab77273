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

//go:build !linux

package engine

import (
	"context"

	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/pluginhost"
)

const errNativeOpen = ircerr.MinPkgEngine + 50

// nativeOpener never claims a path outside Linux: the stdlib "plugin"
// package only supports ELF shared objects on Linux (and a limited
// form on Darwin), and PLUGIN-LOAD's native loader is Linux-only here.
type nativeOpener struct{}

func newNativeOpener(_ *eventloop.Loop) *nativeOpener { return &nativeOpener{} }

func (nativeOpener) Name() string { return "native" }

func (nativeOpener) Open(_ context.Context, _, path string) (*pluginhost.Plugin, error) {
	return nil, ircerr.New(errNativeOpen, "native opener: unsupported on this platform: "+path)
}
