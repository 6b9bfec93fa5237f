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

package value

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// npos is the not-found sentinel returned by the Find family.
const npos = -1

// strBuf is the shared, refcounted backing store for String. Multiple
// String values may point at the same strBuf; a mutation forks a private
// copy first (copy-on-write), matching the atomic/ package's habit of
// keeping shared mutable state behind a small atomic-guarded cell.
type strBuf struct {
	data []byte
	refs atomic.Int32
}

func newStrBuf(b []byte) *strBuf {
	s := &strBuf{data: b}
	s.refs.Store(1)
	return s
}

func (b *strBuf) retain() *strBuf {
	if b != nil {
		b.refs.Add(1)
	}
	return b
}

// String is an immutable, UTF-8 sequence of characters, shared on copy.
// The zero value is the empty string.
type String struct {
	buf *strBuf
}

// NewString builds a String from a Go string.
func NewString(s string) String {
	if s == "" {
		return String{}
	}
	return String{buf: newStrBuf([]byte(s))}
}

// NewStringChar builds a single-character String.
func NewStringChar(c Char) String {
	return NewString(c.String())
}

func (s String) bytes() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.data
}

// Data returns the raw UTF-8 octets backing this String.
func (s String) Data() []byte { return s.bytes() }

// Empty reports whether the String holds no characters.
func (s String) Empty() bool { return len(s.bytes()) == 0 }

// Size returns the number of decoded characters (rune count), not the byte
// length: String("Tést").Size() == 4 while len(String("Tést").Data()) == 5.
func (s String) Size() int { return utf8.RuneCount(s.bytes()) }

// Len is an alias of Size matching Go naming conventions.
func (s String) Len() int { return s.Size() }

func (s String) String() string { return string(s.bytes()) }

// At returns the character at the given rune position.
func (s String) At(pos int) Char {
	i := 0
	for _, r := range s.String() {
		if i == pos {
			return NewChar(r)
		}
		i++
	}
	return Char{}
}

// Contains reports whether c appears anywhere in the String.
func (s String) Contains(c Char) bool {
	return strings.ContainsRune(s.String(), c.Rune())
}

// Find returns the first rune-index position of c, or npos (-1) if absent.
func (s String) Find(c Char) int {
	i := 0
	for _, r := range s.String() {
		if r == c.Rune() {
			return i
		}
		i++
	}
	return npos
}

// RFind returns the last rune-index position of c, or npos (-1) if absent.
func (s String) RFind(c Char) int {
	pos := npos
	i := 0
	for _, r := range s.String() {
		if r == c.Rune() {
			pos = i
		}
		i++
	}
	return pos
}

// FindString returns the rune-index position of the first occurrence of sub.
func (s String) FindString(sub String) int {
	idx := strings.Index(s.String(), sub.String())
	if idx < 0 {
		return npos
	}
	return utf8.RuneCountInString(s.String()[:idx])
}

// Substr returns the substring starting at rune position pos, at most n
// characters (n < 0 means "to the end").
func (s String) Substr(pos int, n int) String {
	runes := []rune(s.String())
	if pos < 0 || pos > len(runes) {
		return String{}
	}

	end := len(runes)
	if n >= 0 && pos+n < end {
		end = pos + n
	}

	return NewString(string(runes[pos:end]))
}

// Split divides the String on every occurrence of separator.
func (s String) Split(separator Char) []String {
	parts := strings.Split(s.String(), separator.String())
	out := make([]String, 0, len(parts))
	for _, p := range parts {
		out = append(out, NewString(p))
	}
	return out
}

// Compare is a three-way comparison against another String.
func (s String) Compare(o String) int {
	return strings.Compare(s.String(), o.String())
}

// Equal reports value equality.
func (s String) Equal(o String) bool { return s.String() == o.String() }

// Concat appends o and returns the resulting String; the receiver and o are
// unmodified (copy-on-write: a fresh backing buffer is allocated).
func (s String) Concat(o String) String {
	if s.Empty() {
		return o
	}
	if o.Empty() {
		return s
	}

	out := make([]byte, 0, len(s.bytes())+len(o.bytes()))
	out = append(out, s.bytes()...)
	out = append(out, o.bytes()...)
	return String{buf: newStrBuf(out)}
}

// Clone returns a String sharing the same backing buffer (refcount
// bumped): no allocation happens until one of the copies is mutated, and
// String itself is immutable so that point never arrives through the
// public API.
func (s String) Clone() String {
	if s.buf == nil {
		return String{}
	}
	return String{buf: s.buf.retain()}
}
