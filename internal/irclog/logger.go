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

// Package irclog is the engine's ambient structured logger: one small
// interface wrapping logrus, so every component logs through the same
// leveled, field-carrying API instead of reaching for the log package
// directly.
package irclog

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the leveled, field-carrying logging surface every engine
// component is handed at construction time.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// WithFields returns a child Logger that merges field into every
	// line it logs, in addition to whatever fields this Logger already
	// carries.
	WithFields(field Fields) Logger

	SetLevel(lvl Level)
	GetLevel() Level
}

type logger struct {
	mu  sync.RWMutex
	lg  *logrus.Logger
	fld Fields
}

// New returns a Logger writing to w at lvl, in logrus' text format.
func New(w io.Writer, lvl Level) Logger {
	if w == nil {
		w = os.Stderr
	}

	lg := logrus.New()
	lg.SetOutput(w)
	lg.SetLevel(lvl.logrus())
	lg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &logger{lg: lg, fld: make(Fields)}
}

func (l *logger) entry() *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lg.WithFields(l.fld.logrus())
}

func (l *logger) Debug(msg string) { l.entry().Debug(msg) }
func (l *logger) Info(msg string)  { l.entry().Info(msg) }
func (l *logger) Warn(msg string)  { l.entry().Warn(msg) }
func (l *logger) Error(msg string) { l.entry().Error(msg) }

func (l *logger) Debugf(format string, args ...interface{}) { l.entry().Debugf(format, args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.entry().Infof(format, args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.entry().Warnf(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }

func (l *logger) WithFields(field Fields) Logger {
	l.mu.RLock()
	merged := l.fld.Merge(field)
	l.mu.RUnlock()

	return &logger{lg: l.lg, fld: merged}
}

func (l *logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lg.SetLevel(lvl.logrus())
}

func (l *logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	switch l.lg.GetLevel() {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return ErrorLevel
	case logrus.WarnLevel:
		return WarnLevel
	case logrus.DebugLevel, logrus.TraceLevel:
		return DebugLevel
	default:
		return InfoLevel
	}
}
