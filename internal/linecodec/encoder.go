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

package linecodec

import (
	"bufio"
	"io"
)

// Encoder drains a Queue against a transport writer. A line that fails
// to go out in full (short write, Flush error) is pushed back to the
// front of the queue so the next Drain call retries the whole line —
// a failed write never silently drops or splits a line (§4.2).
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Drain pops as many lines from q as the rate limit and transport
// writability allow, writing each as "<line>\r\n". It stops at the
// first line the rate limit refuses, or the first write error.
func (e *Encoder) Drain(q *Queue) (sent int, err error) {
	for {
		line, ok := q.Pop()
		if !ok {
			break
		}

		if err = e.writeLine(line); err != nil {
			q.PushFront(line)
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// DrainBypass pops and sends exactly one line from the front of the
// queue, ignoring the rate limit — the PONG fast-path from §4.2.
func (e *Encoder) DrainBypass(q *Queue) (sent bool, err error) {
	line, ok := q.PopBypass()
	if !ok {
		return false, nil
	}

	if err = e.writeLine(line); err != nil {
		q.PushFront(line)
		return false, err
	}

	return true, nil
}

func (e *Encoder) writeLine(line string) error {
	if _, err := e.w.WriteString(line); err != nil {
		return err
	}
	if _, err := e.w.WriteString("\r\n"); err != nil {
		return err
	}

	return e.w.Flush()
}
