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

// Package ircmsg parses and renders the wire format of a single IRC
// protocol line (RFC 1459/2812 framing, with the de-facto ":trailing"
// extension). It is the parsing half of the Line Codec component —
// transport framing (CRLF splitting) lives in internal/linecodec.
package ircmsg

import "strings"

// Prefix is the optional "nick!user@host" (or bare server name) leading
// a line, identifying who sent it.
type Prefix struct {
	Raw  string
	Nick string
	User string
	Host string
}

// Message is one parsed IRC protocol line.
type Message struct {
	Prefix   Prefix
	Command  string
	Params   []string
	Trailing string
	HasTrail bool
}

// Parse decodes a single IRC line (without its trailing CRLF) into a
// Message. An empty line parses to a zero Message with an empty Command.
func Parse(line string) Message {
	var m Message

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return m
	}

	if line[0] == ':' {
		end := strings.IndexByte(line, ' ')
		if end < 0 {
			m.Prefix = parsePrefix(line[1:])
			return m
		}

		m.Prefix = parsePrefix(line[1:end])
		line = strings.TrimLeft(line[end+1:], " ")
	}

	if trail := strings.Index(line, " :"); trail >= 0 {
		m.Trailing = line[trail+2:]
		m.HasTrail = true
		line = line[:trail]
	} else if strings.HasPrefix(line, ":") {
		m.Trailing = line[1:]
		m.HasTrail = true
		line = ""
	}

	fields := strings.Fields(line)
	if len(fields) > 0 {
		m.Command = strings.ToUpper(fields[0])
		if len(fields) > 1 {
			m.Params = fields[1:]
		}
	}

	return m
}

func parsePrefix(raw string) Prefix {
	p := Prefix{Raw: raw}

	rest := raw
	if bang := strings.IndexByte(rest, '!'); bang >= 0 {
		p.Nick = rest[:bang]
		rest = rest[bang+1:]

		if at := strings.IndexByte(rest, '@'); at >= 0 {
			p.User = rest[:at]
			p.Host = rest[at+1:]
		} else {
			p.User = rest
		}
	} else if at := strings.IndexByte(rest, '@'); at >= 0 {
		p.Nick = rest[:at]
		p.Host = rest[at+1:]
	} else {
		p.Nick = rest
	}

	return p
}

// String renders m back to its wire form, without a trailing CRLF.
func (m Message) String() string {
	var b strings.Builder

	if m.Prefix.Raw != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix.Raw)
		b.WriteByte(' ')
	}

	b.WriteString(m.Command)

	for _, p := range m.Params {
		b.WriteByte(' ')
		b.WriteString(p)
	}

	if m.HasTrail {
		b.WriteString(" :")
		b.WriteString(m.Trailing)
	}

	return b.String()
}
