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

package dispatcher

import "strings"

// splitCommand recognizes the Command-event grammar (GLOSSARY
// "Command (event)": "a Message whose text begins with the server's
// configured prefix character followed by a plugin id"). An empty
// prefix never matches, since it would turn every Message into a
// Command. The plugin id is the first whitespace-delimited token
// after the prefix; anything after it becomes the Command event's
// Text.
func splitCommand(prefix, text string) (pluginID, rest string, ok bool) {
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return "", "", false
	}

	body := text[len(prefix):]
	if body == "" {
		return "", "", false
	}

	id, rest, _ := strings.Cut(body, " ")
	if id == "" {
		return "", "", false
	}

	return id, rest, true
}
