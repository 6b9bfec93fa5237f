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

// Package errors is the runtime's coded error type: a numeric CodeError, a
// message resolved through per-package registered ranges, a captured stack
// frame, and a parent chain compatible with errors.Is / errors.As. The
// file pipeline's error taxonomy (rterr) and every package boundary error
// in this module are built on it.
//
// Modification (Add, SetParent) is not synchronized; reads are safe
// concurrently.
package errors

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
)

// FuncMap visits each error of a chain; returning false stops the walk.
type FuncMap func(e error) bool

// ReturnError receives one error's (code, message, file, line), for
// callers flattening a chain into their own reporting structure.
type ReturnError func(code int, msg string, file string, line int)

// Error extends the standard error with a code, a parent chain, and the
// trace captured at construction. Error() renders according to the
// process-wide mode (SetModeReturnError).
type Error interface {
	error

	// IsCode / HasCode test the error's own code, or any code in the
	// chain. GetParentCode collects every distinct code, head first.
	IsCode(code CodeError) bool
	HasCode(code CodeError) bool
	GetCode() CodeError
	GetParentCode() []CodeError

	// Is makes the type usable with the stdlib errors.Is.
	Is(e error) bool

	// IsError / HasError match by message, on the error itself or
	// anywhere in the chain.
	IsError(e error) bool
	HasError(err error) bool
	HasParent() bool
	// GetParent flattens the chain, optionally including the head.
	GetParent(withMainError bool) []error
	// Map walks the chain depth-first until fct returns false.
	Map(fct FuncMap) bool
	ContainsString(s string) bool

	// Add appends parents; SetParent replaces them.
	Add(parent ...error)
	SetParent(parent ...error)

	Code() uint16
	CodeSlice() []uint16

	// CodeError / CodeErrorTrace render code+message (+trace) through
	// pattern, defaulting to the package patterns when empty; the Slice
	// variants cover the whole chain.
	CodeError(pattern string) string
	CodeErrorSlice(pattern string) []string
	CodeErrorTrace(pattern string) string
	CodeErrorTraceSlice(pattern string) []string

	Error() string

	// StringError is the raw message, mode-independent.
	StringError() string
	StringErrorSlice() []string

	// GetError rebuilds a plain stdlib error from the message.
	GetError() error
	GetErrorSlice() []error
	// Unwrap exposes the parent chain to errors.Is / errors.As.
	Unwrap() []error

	GetTrace() string
	GetTraceSlice() []string

	// Return / ReturnError / ReturnParent push the chain into a Return
	// implementation or a ReturnError callback.
	Return(r Return)
	ReturnError(f ReturnError)
	ReturnParent(f ReturnError)
}

// Errors is the error-history surface long-running workers expose.
type Errors interface {
	// ErrorsLast returns the last registered error.
	ErrorsLast() error

	// ErrorsList returns every registered error.
	ErrorsList() []error
}

// Is reports whether e carries an Error anywhere in its chain.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get extracts the Error from e's chain, nil when there is none.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has reports whether e's chain carries code.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}
	return false
}

// ContainsString searches s through e's message chain, falling back to a
// plain substring test for non-Error errors.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	}
	if err := Get(e); err != nil {
		return err.ContainsString(s)
	}
	return strings.Contains(e.Error(), s)
}

// IsCode reports whether e's own code is code.
func IsCode(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.IsCode(code)
	}
	return false
}

// Make returns e as an Error, wrapping a foreign error with code zero and
// no trace. Nil in, nil out.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	var err Error
	if errors.As(e, &err) {
		return err
	}

	return &ers{e: e.Error(), t: getNilFrame()}
}

// MakeIfError folds a list of possibly-nil errors into one Error: the
// first real error becomes the head, the rest its parents. Nil when the
// list holds no real error.
func MakeIfError(err ...error) Error {
	var e Error

	for _, p := range err {
		switch {
		case p == nil:
		case e == nil:
			e = Make(p)
		default:
			e.Add(p)
		}
	}

	return e
}

// AddOrNew grows errMain with errSub and parents, building a fresh Error
// from whichever of the two exists. Nil when both are nil.
func AddOrNew(errMain, errSub error, parent ...error) Error {
	switch {
	case errMain != nil:
		e := Get(errMain)
		if e == nil {
			e = New(0, errMain.Error())
		}
		e.Add(errSub)
		e.Add(parent...)
		return e
	case errSub != nil:
		return New(0, errSub.Error(), parent...)
	default:
		return nil
	}
}

// makeParents converts a raw parent list into Error values, skipping nils.
func makeParents(parent []error) []Error {
	p := make([]Error, 0, len(parent))

	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}

	return p
}

// New builds an Error with the caller's frame as trace.
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: makeParents(parent),
		t: getFrame(),
	}
}

// Newf is New with a fmt.Sprintf message.
func Newf(code uint16, pattern string, args ...any) Error {
	return &ers{
		c: code,
		e: fmt.Sprintf(pattern, args...),
		p: make([]Error, 0),
		t: getFrame(),
	}
}

// NewErrorTrace builds an Error carrying an explicit (file, line) trace
// instead of capturing the caller's, clamping code into uint16 range.
func NewErrorTrace(code int, msg string, file string, line int, parent ...error) Error {
	var c uint16
	switch {
	case code < 0:
		c = 0
	case code > math.MaxUint16:
		c = math.MaxUint16
	default:
		c = uint16(code)
	}

	return &ers{
		c: c,
		e: msg,
		p: makeParents(parent),
		t: runtime.Frame{File: file, Line: line},
	}
}

// NewErrorRecovered builds the Error a recover() handler reports: the
// recovered value becomes the first parent and the surrounding stack is
// appended to the message frame by frame.
func NewErrorRecovered(msg string, recovered string, parent ...error) Error {
	p := make([]Error, 0, len(parent)+1)

	if recovered != "" {
		p = append(p, &ers{e: recovered})
	}

	p = append(p, makeParents(parent)...)

	for _, t := range getFrameVendor() {
		if t == getNilFrame() {
			continue
		}
		msg += "\n " + fmt.Sprintf("Fct: %s - File: %s - Line: %d", t.Function, t.File, t.Line)
	}

	return &ers{
		e: msg,
		p: p,
		t: getFrame(),
	}
}

// IfError is New gated on the parent list: nil unless at least one parent
// is a real error.
func IfError(code uint16, message string, parent ...error) Error {
	p := makeParents(parent)

	if len(p) < 1 {
		return nil
	}

	return &ers{
		c: code,
		e: message,
		p: p,
		t: getFrame(),
	}
}

func NewDefaultReturn() *DefaultReturn {
	return &DefaultReturn{}
}
