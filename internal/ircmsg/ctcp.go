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

package ircmsg

import "strings"

const ctcpDelim = "\x01"

// IsCTCP reports whether trailing is CTCP-quoted (wrapped in \x01) and,
// if so, returns its keyword (e.g. "VERSION", "ACTION") and body.
func IsCTCP(trailing string) (keyword string, body string, ok bool) {
	if !strings.HasPrefix(trailing, ctcpDelim) || !strings.HasSuffix(trailing, ctcpDelim) || len(trailing) < 2 {
		return "", "", false
	}

	inner := trailing[1 : len(trailing)-1]
	if sp := strings.IndexByte(inner, ' '); sp >= 0 {
		return strings.ToUpper(inner[:sp]), inner[sp+1:], true
	}

	return strings.ToUpper(inner), "", true
}

// QuoteCTCP wraps keyword and body into a CTCP-quoted trailing string,
// ready to use as a NOTICE/PRIVMSG reply.
func QuoteCTCP(keyword, body string) string {
	if body == "" {
		return ctcpDelim + keyword + ctcpDelim
	}

	return ctcpDelim + keyword + " " + body + ctcpDelim
}

// IsAction reports whether trailing is a CTCP ACTION ("/me") message and
// returns its body.
func IsAction(trailing string) (body string, ok bool) {
	kw, body, is := IsCTCP(trailing)
	if !is || kw != "ACTION" {
		return "", false
	}

	return body, true
}
