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

// Package linecodec turns a raw transport byte stream into IRC messages
// and back (§4.2): a Decoder extracting CRLF-delimited lines, and a
// Queue draining outbound lines under a sliding-window rate limit with
// a PING/PONG front-of-queue bypass.
package linecodec

import (
	"bufio"
	"io"
	"strings"

	"github.com/sabouaram/irccd/internal/ircmsg"
)

// Decoder accumulates bytes from a transport and yields one
// ircmsg.Message per CRLF-terminated line. Malformed lines are
// discarded, never killing the connection (§4.2).
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadMessage blocks until a full line has been read, returning its
// parsed Message. It returns io.EOF (or another read error) when the
// underlying stream is exhausted or broken.
func (d *Decoder) ReadMessage() (ircmsg.Message, error) {
	line, err := d.r.ReadString('\n')
	if line == "" && err != nil {
		return ircmsg.Message{}, err
	}

	line = strings.TrimRight(line, "\r\n")
	return ircmsg.Parse(line), err
}
