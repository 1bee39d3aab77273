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

package ctlsocket

import (
	"strings"

	"github.com/sabouaram/irccd/internal/serverfsm"
)

// EventFields returns ev's populated fields in wire order, unescaped:
// the event kind, then ServerID, then whichever of
// Origin/Channel/Target/PluginID/Names/Text are non-empty. Shared by
// SerializeEvent (escaped and joined for the control socket) and the
// dispatcher's hook spawn, which passes the same fields as separate
// argv entries (§4.7 step 2) and so needs no escaping at all.
func EventFields(ev serverfsm.Event) []string {
	fields := []string{ev.Kind.String(), ev.ServerID}

	if ev.Origin != "" {
		fields = append(fields, ev.Origin)
	}
	if ev.Channel != "" {
		fields = append(fields, ev.Channel)
	}
	if ev.Target != "" {
		fields = append(fields, ev.Target)
	}
	if ev.PluginID != "" {
		fields = append(fields, ev.PluginID)
	}
	if len(ev.Names) > 0 {
		fields = append(fields, strings.Join(ev.Names, ","))
	}
	if ev.Text != "" {
		fields = append(fields, ev.Text)
	}

	return fields
}

// SerializeEvent renders ev as one broadcast line: the event kind as
// the verb, followed by its populated fields, space-separated and
// escaped exactly like an incoming verb line (§4.6 Broadcast) so a
// watching peer can use the same parser for both directions.
func SerializeEvent(ev serverfsm.Event) string {
	return joinFields(EventFields(ev)...)
}
