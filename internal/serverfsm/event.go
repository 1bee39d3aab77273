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

package serverfsm

// Kind is an Event's variant tag (§3 Event).
type Kind int

const (
	EventConnect Kind = iota
	EventDisconnect
	EventMessage
	EventNotice
	EventMe
	EventJoin
	EventPart
	EventKick
	EventInvite
	EventMode
	EventNick
	EventTopic
	EventNames
	EventWhois
	EventCommand
)

func (k Kind) String() string {
	switch k {
	case EventConnect:
		return "CONNECT"
	case EventDisconnect:
		return "DISCONNECT"
	case EventMessage:
		return "MESSAGE"
	case EventNotice:
		return "NOTICE"
	case EventMe:
		return "ME"
	case EventJoin:
		return "JOIN"
	case EventPart:
		return "PART"
	case EventKick:
		return "KICK"
	case EventInvite:
		return "INVITE"
	case EventMode:
		return "MODE"
	case EventNick:
		return "NICK"
	case EventTopic:
		return "TOPIC"
	case EventNames:
		return "NAMES"
	case EventWhois:
		return "WHOIS"
	case EventCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// WhoisInfo is the batched result of a WHOIS query (§4.3 Connected),
// accumulated across 311/312/317/319 replies and emitted on 318.
type WhoisInfo struct {
	Nick     string
	User     string
	Host     string
	Realname string
	Server   string // RPL_WHOISSERVER (312): the server the nick is connected to
	Idle     int    // RPL_WHOISIDLE (317): seconds idle
	Channels []string
}

// Event is a value type produced by a Server and consumed exactly once
// by the Dispatcher (§3 Event). Only the fields relevant to Kind are
// populated; the rest are zero.
type Event struct {
	Kind     Kind
	ServerID string

	// Origin is the raw "nick!user@host" (or bare server name) prefix
	// of the line that produced this event, when one was present.
	Origin string

	Channel string
	Target  string
	Text    string
	Params  []string

	Names []string
	Whois WhoisInfo

	// PluginID is set only on a Command event: the loaded plugin id the
	// message's command-prefix rewrite resolved to (§4.7).
	PluginID string
}
