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

import "encoding/json"

// DefaultReturn accumulates a coded error plus any parents in a form that
// serializes cleanly for a transport that isn't Go-error-shaped, e.g. a
// future JSON control-socket framing (see DESIGN.md's open-question entry
// on plain-text vs JSON framing).
type DefaultReturn struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Parents []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		File    string `json:"file,omitempty"`
		Line    int    `json:"line,omitempty"`
	} `json:"parents,omitempty"`
}

// NewDefaultReturn builds an empty DefaultReturn.
func NewDefaultReturn() *DefaultReturn {
	return &DefaultReturn{}
}

// SetError records the primary error.
func (r *DefaultReturn) SetError(code int, msg string, _ string, _ int) {
	r.Code = CodeError(clampCode(code)).String()
	r.Message = msg
}

// AddParent appends a parent error.
func (r *DefaultReturn) AddParent(code int, msg string, file string, line int) {
	r.Parents = append(r.Parents, struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		File    string `json:"file,omitempty"`
		Line    int    `json:"line,omitempty"`
	}{Code: code, Message: msg, File: file, Line: line})
}

// JSON marshals the accumulated error, returning an empty slice if
// marshaling somehow fails rather than panicking a caller mid error-path.
func (r *DefaultReturn) JSON() []byte {
	b, err := json.Marshal(r)
	if err != nil {
		return []byte{}
	}
	return b
}
