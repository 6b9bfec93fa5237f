/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package logger is the structured logging facade shared by every subsystem
// of the runtime core: object destruction, signal dispatch, the timer
// engine, the protocol-handler cache and the file pipeline all log through
// it rather than through fmt.Println or panic. The backing engine is
// logrus; a jwalterweatherman bridge is wired in for the cobra-based CLI
// bootstrap, which logs through jww by convention.
package logger

import (
	"io"

	loglvl "github.com/nabbar/runtimecore/logger/level"

	jww "github.com/spf13/jwalterweatherman"
)

// FuncLog returns the current Logger for a subsystem to log through.
// Subsystems hold a FuncLog, not a Logger, so the logger can be swapped
// without every holder needing to be updated.
type FuncLog func() Logger

type Logger interface {
	io.Writer

	// SetLevel sets the minimum severity that is actually written.
	SetLevel(lvl loglvl.Level)
	// GetLevel returns the current minimum severity.
	GetLevel() loglvl.Level

	// SetOutput redirects the backing writer (defaults to os.Stderr).
	SetOutput(w io.Writer)

	// Clone returns an independent Logger sharing the same output and level.
	Clone() Logger

	// WithField returns a Logger preset to attach the given field on every
	// subsequent entry.
	WithField(key string, val interface{}) Logger

	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(message string, args ...interface{})
	Fatal(message string, args ...interface{})

	// JWW returns a jwalterweatherman Notepad wired to the same backend, for
	// libraries (viper, cobra) that only know how to log through jww.
	JWW() *jww.Notepad
}

// New returns a Logger at InfoLevel writing to os.Stderr.
func New() Logger {
	return newModel()
}
