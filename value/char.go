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

// Package value holds the immutable, share-on-copy value types consumed by
// the rest of the runtime core: String, Char, URI and ByteStream.
package value

import "unicode/utf8"

// Char is a single decoded Unicode code point together with the number of
// UTF-8 octets required to encode it. It is the unit String iterates over.
type Char struct {
	r rune
	n int
}

// NewChar wraps a decoded rune.
func NewChar(r rune) Char {
	n := utf8.RuneLen(r)
	if n < 1 {
		n = 1
		r = utf8.RuneError
	}

	return Char{r: r, n: n}
}

// Rune returns the 21-bit wide character value.
func (c Char) Rune() rune { return c.r }

// OctetsRequired returns how many UTF-8 octets (1-4) are required to encode
// this character.
func (c Char) OctetsRequired() int { return c.n }

func (c Char) String() string { return string(c.r) }
