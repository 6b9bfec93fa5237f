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
	"math"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Message resolves a CodeError to its message text. One Message function
// covers a whole code range: it is registered against the range's floor
// and receives every code at or above it (up to the next floor).
type Message func(code CodeError) (message string)

// CodeError is a numeric error code. Each package owning codes reserves a
// floor in modules.go and registers one Message for everything above it.
type CodeError uint16

const (
	// UnknownError is the zero code, used when no code can be determined.
	UnknownError CodeError = 0

	// UnknownMessage is the message resolved for unregistered codes.
	UnknownMessage = "unknown error"

	// NullMessage is an empty message.
	NullMessage = ""
)

// msgRange is one registered (floor, resolver) pair; msgRanges stays
// sorted ascending by floor so resolution is a binary search.
type msgRange struct {
	floor CodeError
	fct   Message
}

var msgRanges []msgRange

// rangeFor returns the registered resolver owning code: the one with the
// highest floor not exceeding it. Returns nil when code is below every
// floor.
func rangeFor(code CodeError) Message {
	i := sort.Search(len(msgRanges), func(i int) bool {
		return msgRanges[i].floor > code
	})
	if i == 0 {
		return nil
	}
	return msgRanges[i-1].fct
}

// RegisterIdFctMessage registers fct as the message resolver for every
// code at or above minCode (until the next registered floor). Packages
// call it from init; registration is not synchronized against concurrent
// resolution.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	for i := range msgRanges {
		if msgRanges[i].floor == minCode {
			msgRanges[i].fct = fct
			return
		}
	}

	msgRanges = append(msgRanges, msgRange{floor: minCode, fct: fct})
	sort.Slice(msgRanges, func(i, j int) bool {
		return msgRanges[i].floor < msgRanges[j].floor
	})
}

// ExistInMapMessage reports whether code resolves to a non-empty message,
// used by packages to detect floor collisions before registering.
func ExistInMapMessage(code CodeError) bool {
	if f := rangeFor(code); f != nil {
		return f(code) != NullMessage
	}
	return false
}

// ParseCodeError converts i to a CodeError, clamping negatives to
// UnknownError and overflow to the maximum code.
func ParseCodeError(i int64) CodeError {
	switch {
	case i < 0:
		return UnknownError
	case i >= int64(math.MaxUint16):
		return math.MaxUint16
	default:
		return CodeError(i)
	}
}

// NewCodeError converts a raw uint16 to a CodeError.
func NewCodeError(code uint16) CodeError {
	return CodeError(code)
}

func (c CodeError) Uint16() uint16 { return uint16(c) }
func (c CodeError) Int() int       { return int(c) }

// String renders the numeric code, not its message.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// GetMessage returns the numeric code as a string.
// Deprecated: see Message
func (c CodeError) GetMessage() string {
	return c.String()
}

// Message resolves c through the registered range table, falling back to
// UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f := rangeFor(c); f != nil {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error carrying c, its resolved message, and any parents.
func (c CodeError) Error(p ...error) Error {
	return New(c.Uint16(), c.Message(), p...)
}

// Errorf is Error with the resolved message used as a format pattern. Args
// beyond the pattern's verb count are discarded.
func (c CodeError) Errorf(args ...interface{}) Error {
	m := c.Message()

	if !strings.Contains(m, "%") {
		return New(c.Uint16(), m)
	}

	if n := strings.Count(m, "%"); n < len(args) {
		args = args[:n]
	}

	return Newf(c.Uint16(), m, args...)
}

// IfError builds an Error only when the parent list contains a real
// error; nil otherwise.
func (c CodeError) IfError(e ...error) Error {
	return IfError(c.Uint16(), c.Message(), e...)
}

// GetCodePackages maps every registered floor to the source file that
// registered it, relative to rootPackage (vendor prefixes stripped).
func GetCodePackages(rootPackage string) map[CodeError]string {
	res := make(map[CodeError]string, len(msgRanges))

	for _, r := range msgRanges {
		p := reflect.ValueOf(r.fct).Pointer()
		n, _ := runtime.FuncForPC(p).FileLine(p)

		if _, after, found := strings.Cut(n, "/vendor/"); found {
			n = after
		}
		if _, after, found := strings.Cut(n, rootPackage); found && rootPackage != "" {
			n = after
		}
		if !strings.HasPrefix(n, "/") {
			n = "/" + n
		}

		res[r.floor] = n
	}

	return res
}
