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

package ircerr

// Each engine component claims a 100-wide code range so a control-socket
// ERROR response or a log line can carry a stable numeric code alongside
// its message, without two components ever colliding on the same value.
const (
	MinPkgConfig      = 100
	MinPkgEventLoop   = 200
	MinPkgIRCMsg      = 300
	MinPkgLineCodec   = 400
	MinPkgServerFSM   = 500
	MinPkgRuleChain   = 600
	MinPkgPluginHost  = 700
	MinPkgControlSock = 800
	MinPkgDispatcher  = 900
	MinPkgHook        = 1000
	MinPkgLogger      = 1100
	MinPkgEngine      = 1200

	MinAvailable = 1300
)
