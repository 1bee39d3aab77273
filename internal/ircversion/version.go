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

// Package ircversion holds the engine's build identity, reported by
// the "version"/"info" CLI subcommands.
package ircversion

import "fmt"

// Release is overwritten at build time via -ldflags, following the same
// convention as the rest of the pack's CLI entry points.
var (
	Release = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Version describes one build of irccd.
type Version struct {
	Release string
	Commit  string
	Date    string
}

// Current returns the Version for the running binary.
func Current() Version {
	return Version{Release: Release, Commit: Commit, Date: Date}
}

func (v Version) String() string {
	return fmt.Sprintf("irccd %s (commit %s, built %s)", v.Release, v.Commit, v.Date)
}
