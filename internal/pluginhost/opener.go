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

import "context"

// Opener is the capability trait behind PLUGIN-LOAD (§4.5, §9 Design
// Notes). The source distinguishes a native shared-object loader from
// an embedded-scripting-language loader; rather than hard-code either
// one, the engine tries each registered Opener in turn — the same
// "try each registered kind until one claims it" shape the teacher
// uses to probe its configured component kinds — and keeps whichever
// Plugin the first successful Opener returns.
type Opener interface {
	// Name identifies the opener for logging and PLUGIN-INFO.
	Name() string

	// Open loads the plugin at path under id and returns a fully wired
	// Plugin (metadata and callbacks already bound), or an error if
	// this opener does not recognize path.
	Open(ctx context.Context, id, path string) (*Plugin, error)
}
