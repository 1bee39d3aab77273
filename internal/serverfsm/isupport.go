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

import "strings"

// parsePrefixToken decodes the ISUPPORT PREFIX=(ov)@+ token into a
// mode-letter -> symbol mapping (§4.3 Connected, grounded on the
// original's Server::extractPrefixes, which walks the same
// "(modes)symbols" pairing by position rather than by delimiter).
func parsePrefixToken(token string) map[byte]byte {
	out := make(map[byte]byte)

	if !strings.HasPrefix(token, "(") {
		return out
	}

	parenEnd := strings.IndexByte(token, ')')
	if parenEnd < 0 {
		return out
	}

	modes := token[1:parenEnd]
	symbols := token[parenEnd+1:]

	n := len(modes)
	if len(symbols) < n {
		n = len(symbols)
	}

	for i := 0; i < n; i++ {
		out[modes[i]] = symbols[i]
	}

	return out
}

// cleanPrefix strips a single leading membership-symbol character (as
// advertised by ISUPPORT PREFIX) from a NAMES-listed nickname.
func cleanPrefix(nick string, modes map[byte]byte) string {
	if nick == "" {
		return nick
	}

	for _, symbol := range modes {
		if nick[0] == symbol {
			return nick[1:]
		}
	}

	return nick
}
