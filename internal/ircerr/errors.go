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

// Package ircerr provides the engine's coded, chainable error type.
//
// Every component boundary (event loop, line codec, server state machine,
// rule chain, plugin host, control server, dispatcher) reports failures as
// an ircerr.Error: a numeric code in that component's reserved range (see
// modules.go), an automatically captured file/line, and an optional parent
// error chain. This is how a control-socket ERROR response or a log line
// can carry a stable numeric code alongside a human-readable message,
// while staying compatible with errors.Is/errors.As.
//
// Example usage:
//
//	err := ircerr.New(ircerr.MinPkgRuleChain+1, "rule index out of range")
//	if ircerr.IsCode(err, ircerr.MinPkgRuleChain+1) {
//	    // respond ERROR rule index out of range on the control socket
//	}
package ircerr

import (
	"errors"
	"runtime"
	"strings"
)

// Error extends the standard error with a component code, a parent chain,
// and the call site that raised it.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code (parents
	// are not checked).
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Is implements compatibility with the standard errors.Is.
	Is(err error) bool

	// HasParent reports whether this error wraps at least one parent.
	HasParent() bool
	// Unwrap exposes the parent chain to errors.Is/errors.As.
	Unwrap() []error

	// GetTrace returns "file#line" for the call to New that raised this
	// error, or "" if no frame was captured.
	GetTrace() string
}

type ers struct {
	code   uint16
	msg    string
	parent []Error
	frame  runtime.Frame
	// orig is the original error Make wrapped this from, when it was not
	// already an Error. Kept so Unwrap can hand back the original value
	// instead of a copy, preserving errors.Is/errors.As identity through
	// one level of wrapping.
	orig error
}

func (e *ers) Error() string {
	return e.msg
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.code)
}

func (e *ers) IsCode(code CodeError) bool {
	return e.code == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.parent {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) isSameMessage(err error) bool {
	return strings.EqualFold(e.msg, err.Error())
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	if other, ok := err.(*ers); ok {
		if e.code != 0 || other.code != 0 {
			return e.code == other.code
		}
		return e.isSameMessage(other)
	}

	return e.isSameMessage(err)
}

func (e *ers) HasParent() bool {
	return len(e.parent) > 0
}

func (e *ers) Unwrap() []error {
	if len(e.parent) == 0 {
		return nil
	}

	r := make([]error, 0, len(e.parent))
	for _, p := range e.parent {
		if pe, ok := p.(*ers); ok && pe.orig != nil {
			r = append(r, pe.orig)
			continue
		}
		r = append(r, p)
	}
	return r
}

func (e *ers) GetTrace() string {
	return trace(e.frame)
}

// Is reports whether e is (wraps) an ircerr.Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error if it is one, or nil otherwise.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has reports whether e is an ircerr.Error carrying code, anywhere in its
// parent chain.
func Has(e error, code CodeError) bool {
	err := Get(e)
	if err == nil {
		return false
	}
	return err.HasCode(code)
}

// IsCode reports whether e is an ircerr.Error whose own code equals code.
func IsCode(e error, code CodeError) bool {
	err := Get(e)
	if err == nil {
		return false
	}
	return err.IsCode(code)
}

// Make wraps a plain error as an ircerr.Error with code UnknownError, or
// returns it unchanged if it already is one.
func Make(e error) Error {
	if e == nil {
		return nil
	}
	if err := Get(e); err != nil {
		return err
	}
	return &ers{code: 0, msg: e.Error(), orig: e}
}

// New builds an Error with the given code, message, and optional parent
// errors, capturing the caller's file/line.
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		code:   code,
		msg:    message,
		parent: wrapParents(parent),
		frame:  callerFrame(1),
	}
}

func wrapParents(parent []error) []Error {
	if len(parent) == 0 {
		return nil
	}

	r := make([]Error, 0, len(parent))
	for _, e := range parent {
		if er := Make(e); er != nil {
			r = append(r, er)
		}
	}
	return r
}

func clampCode(code int) uint16 {
	if code < 0 {
		return 0
	}
	if code > 0xFFFF {
		return 0xFFFF
	}
	return uint16(code)
}
