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

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// ers is the concrete Error: a code, a message, the parent chain, and the
// frame captured at construction.
type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

// bothOrNeither compares two strings case-insensitively when both are
// non-empty; match is meaningless (decided false) when exactly one side is
// empty, and the comparison moves on to the next criterion when both are.
func bothOrNeither(a, b string) (match, decided bool) {
	switch {
	case a != "" && b != "":
		return strings.EqualFold(a, b), true
	case a != "" || b != "":
		return false, true
	default:
		return false, false
	}
}

// is compares two ers by trace first, then rendered message, then code —
// the first criterion present on either side decides (present on one side
// only, it decides false).
func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}

	if match, decided := bothOrNeither(e.GetTrace(), err.GetTrace()); decided {
		return match
	}

	if match, decided := bothOrNeither(e.Error(), err.Error()); decided {
		return match
	}

	if e.Code() > 0 && err.Code() > 0 {
		return e.Code() == err.Code()
	}

	return false
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(*ers); ok {
		return e.is(er)
	}

	return e.IsError(err)
}

// Add appends parents. An *ers whose message equals e's own is flattened
// into its parents instead of being appended; a cycle through an error
// with a different message is not detected.
func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		switch t := v.(type) {
		case nil:
			continue
		case *ers:
			if e.IsError(t) {
				for _, sub := range t.p {
					e.Add(sub)
				}
			} else {
				e.p = append(e.p, t)
			}
		case Error:
			e.p = append(e.p, t)
		default:
			e.p = append(e.p, &ers{e: v.Error()})
		}
	}
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) IsError(err error) bool {
	return strings.EqualFold(e.e, err.Error())
}

// HasCode reports whether code appears anywhere in the chain.
func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

// GetParentCode collects every distinct code in the chain, head first.
func (e *ers) GetParentCode() []CodeError {
	res := []CodeError{e.GetCode()}

	for _, p := range e.p {
		for _, c := range p.GetParentCode() {
			if !slices.Contains(res, c) {
				res = append(res, c)
			}
		}
	}

	return res
}

// HasError reports whether err's message appears anywhere in the chain.
func (e *ers) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}

	for _, p := range e.p {
		if p.IsError(err) || p.HasError(err) {
			return true
		}
	}

	return false
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

// GetParent flattens the chain into plain errors, optionally led by a
// detached copy of e itself.
func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)

	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}

	for _, p := range e.p {
		res = append(res, p.GetParent(true)...)
	}

	return res
}

func (e *ers) SetParent(parent ...error) {
	e.p = nil
	e.Add(parent...)
}

// Map applies fct depth-first over the chain, stopping at the first false.
func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}

	for _, p := range e.p {
		if !p.Map(fct) {
			return false
		}
	}

	return true
}

func (e *ers) ContainsString(s string) bool {
	if strings.Contains(e.e, s) {
		return true
	}

	for _, p := range e.p {
		if p.ContainsString(s) {
			return true
		}
	}

	return false
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) CodeSlice() []uint16 {
	r := []uint16{e.Code()}

	for _, p := range e.p {
		if c := p.Code(); c > 0 {
			r = append(r, c)
		}
	}

	return r
}

// Error renders e according to the process-wide ErrorMode.
func (e *ers) Error() string {
	return modeError.error(e)
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) StringErrorSlice() []string {
	r := []string{e.StringError()}

	for _, p := range e.p {
		r = append(r, p.Error())
	}

	return r
}

func (e *ers) GetError() error {
	return errors.New(e.e)
}

func (e *ers) GetErrorSlice() []error {
	r := []error{e.GetError()}

	for _, p := range e.p {
		if p == nil {
			continue
		}
		r = append(r, p.GetErrorSlice()...)
	}

	return r
}

// Unwrap exposes the parent chain to errors.Is / errors.As.
func (e *ers) Unwrap() []error {
	if len(e.p) < 1 {
		return nil
	}

	r := make([]error, 0, len(e.p))

	for _, p := range e.p {
		if p != nil {
			r = append(r, p)
		}
	}

	return r
}

// GetTrace renders the captured frame as "file#line", preferring the
// filtered file path over the function name.
func (e *ers) GetTrace() string {
	switch {
	case e.t.File != "":
		return fmt.Sprintf("%s#%d", filterPath(e.t.File), e.t.Line)
	case e.t.Function != "":
		return fmt.Sprintf("%s#%d", e.t.Function, e.t.Line)
	default:
		return ""
	}
}

func (e *ers) GetTraceSlice() []string {
	r := []string{e.GetTrace()}

	for _, p := range e.p {
		if t := p.GetTrace(); t != "" {
			r = append(r, t)
		}
	}

	return r
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError())
}

func (e *ers) CodeErrorSlice(pattern string) []string {
	r := []string{e.CodeError(pattern)}

	for _, p := range e.p {
		r = append(r, p.CodeError(pattern))
	}

	return r
}

func (e *ers) CodeErrorTrace(pattern string) string {
	if pattern == "" {
		pattern = defaultPatternTrace
	}
	return fmt.Sprintf(pattern, e.Code(), e.StringError(), e.GetTrace())
}

func (e *ers) CodeErrorTraceSlice(pattern string) []string {
	r := []string{e.CodeErrorTrace(pattern)}

	for _, p := range e.p {
		r = append(r, p.CodeErrorTrace(pattern))
	}

	return r
}

func (e *ers) Return(r Return) {
	e.ReturnError(r.SetError)
	e.ReturnParent(r.AddParent)
}

func (e *ers) ReturnError(f ReturnError) {
	if e.t.File != "" {
		f(int(e.c), e.e, e.t.File, e.t.Line)
	} else {
		f(int(e.c), e.e, e.t.Function, e.t.Line)
	}
}

func (e *ers) ReturnParent(f ReturnError) {
	for _, p := range e.p {
		p.ReturnError(f)
		p.ReturnParent(f)
	}
}
