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
	"bytes"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

// ByteStream is an owned, sliceable buffer of bytes read from or written to
// a ProtocolHandler. Append forks a private copy when the backing array is
// shared, the same copy-on-write discipline as String.
type ByteStream struct {
	buf *strBuf
}

// NewByteStream wraps b without copying; the caller must not mutate b
// afterwards.
func NewByteStream(b []byte) ByteStream {
	if len(b) == 0 {
		return ByteStream{}
	}
	return ByteStream{buf: newStrBuf(b)}
}

func (b ByteStream) Len() int {
	if b.buf == nil {
		return 0
	}
	return len(b.buf.data)
}

func (b ByteStream) Bytes() []byte {
	if b.buf == nil {
		return nil
	}
	return b.buf.data
}

func (b ByteStream) Empty() bool { return b.Len() == 0 }

// Append returns a new ByteStream holding b's contents followed by p.
func (b ByteStream) Append(p []byte) ByteStream {
	if len(p) == 0 {
		return b
	}

	out := make([]byte, 0, b.Len()+len(p))
	out = append(out, b.Bytes()...)
	out = append(out, p...)
	return NewByteStream(out)
}

// Clone shares the backing array (refcount bumped); ByteStream is immutable
// through its public API so no copy is actually needed until Append.
func (b ByteStream) Clone() ByteStream {
	if b.buf == nil {
		return ByteStream{}
	}
	return ByteStream{buf: b.buf.retain()}
}

// DecodeContentEncoding transparently decompresses a ByteStream according
// to a Content-Encoding / file-extension hint. Only "xz" is recognized;
// anything else is returned unchanged.
func DecodeContentEncoding(encoding string, b ByteStream) (ByteStream, error) {
	if !strings.EqualFold(encoding, "xz") {
		return b, nil
	}

	r, err := xz.NewReader(bytes.NewReader(b.Bytes()))
	if err != nil {
		return ByteStream{}, err
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return ByteStream{}, err
	}

	return NewByteStream(out), nil
}
