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

//go:build linux

package engine

import (
	"context"
	"fmt"
	goplugin "plugin"
	"strings"

	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/ircerr"
	"github.com/sabouaram/irccd/internal/pluginhost"
)

const errNativeOpen = ircerr.MinPkgEngine + 50

// Every native plugin's .so must export a package-level var named
// "IRCCDPlugin" of type func(id string, loop *eventloop.Loop)
// *pluginhost.Plugin (§9 "Polymorphic plugin loaders": the concrete
// native-shared-object loader, as opposed to the out-of-scope
// embedded-scripting one). The type must be an unnamed func literal,
// not an alias, since Go's plugin symbol lookup matches by exact
// static type.

// nativeOpener is the pluginhost.Opener for native Go shared objects
// built with `go build -buildmode=plugin`. It is the one concrete
// Opener this engine registers; a future embedded-scripting Opener
// would register alongside it without any change to Host.Load's
// "try each registered opener" loop (§9).
type nativeOpener struct {
	loop *eventloop.Loop
}

func newNativeOpener(loop *eventloop.Loop) *nativeOpener {
	return &nativeOpener{loop: loop}
}

func (nativeOpener) Name() string { return "native" }

func (o *nativeOpener) Open(_ context.Context, id, path string) (*pluginhost.Plugin, error) {
	if !strings.HasSuffix(path, ".so") {
		return nil, ircerr.New(errNativeOpen, "native opener: not a shared object: "+path)
	}

	lib, err := goplugin.Open(path)
	if err != nil {
		return nil, ircerr.New(errNativeOpen, fmt.Sprintf("opening %s: %s", path, err.Error()), err)
	}

	sym, err := lib.Lookup("IRCCDPlugin")
	if err != nil {
		return nil, ircerr.New(errNativeOpen, fmt.Sprintf("%s: missing IRCCDPlugin symbol", path), err)
	}

	factory, ok := sym.(func(id string, loop *eventloop.Loop) *pluginhost.Plugin)
	if !ok {
		return nil, ircerr.New(errNativeOpen, path+": IRCCDPlugin has the wrong signature")
	}

	return factory(id, o.loop), nil
}
