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

// Package ctlsocket implements the Unix-domain control server (§4.6):
// bind/accept, the line-based verb protocol, and broadcast fan-out to
// watching peers. It knows nothing about Servers, Plugins, Rules or
// Hooks directly — every verb is resolved through the Backend
// interface the engine supplies, the same separation the teacher
// draws between an httpserver.Server (transport/lifecycle) and the
// http.Handler it is given to run.
package ctlsocket

import "strings"

// splitVerb splits a raw protocol line into its verb and the
// remaining text, trimming the trailing newline the peer's line
// reader already stripped.
func splitVerb(line string) (verb, rest string) {
	line = strings.TrimRight(line, "\r\n")
	verb, rest, found := strings.Cut(line, " ")
	if !found {
		return verb, ""
	}
	return verb, rest
}

// splitArgs splits rest into up to n space-separated fields, where the
// last field keeps any embedded spaces verbatim — the "last positional
// arg may contain spaces" rule every verb in §4.6 shares. n counts the
// fields wanted including the trailing catch-all one; a shorter rest
// yields fewer, never more.
func splitArgs(rest string, n int) []string {
	if rest == "" {
		return nil
	}
	return strings.SplitN(rest, " ", n)
}

// escapeField makes value safe to embed as one space-separated field
// in a broadcast line: a literal backslash or newline would otherwise
// corrupt the line framing, so both are escaped the same way the
// incoming verb grammar expects a watcher, acting as a simple log
// source, to be able to round-trip.
func escapeField(value string) string {
	r := strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")
	return r.Replace(value)
}

func unescapeField(value string) string {
	r := strings.NewReplacer("\\n", "\n", "\\r", "\r", "\\\\", "\\")
	return r.Replace(value)
}

// joinFields renders fields as one space-separated line, escaping each
// field and wrapping any field that contains a space or tab in double
// quotes (with embedded quotes backslash-escaped), so embedded
// whitespace cannot be mistaken for a field separator.
func joinFields(fields ...string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		f = escapeField(f)
		if strings.ContainsAny(f, " \t") {
			f = `"` + strings.ReplaceAll(f, `"`, `\"`) + `"`
		}
		out[i] = f
	}
	return strings.Join(out, " ")
}
