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
	"time"

	"github.com/bits-and-blooms/bitset"
)

// File-type bits for StatResult.Type, one bit per POSIX file type.
const (
	TypeFile = uint(iota)
	TypeDir
	TypeCharDevice
	TypeBlockDevice
	TypeSymlink
	TypeSocket
	TypePipe
)

// FileType is a bitfield of the type bits above; a StatResult will normally
// carry exactly one of them set, but the representation allows callers to
// test with a single Test call regardless of which bit it turns out to be.
type FileType struct {
	bits *bitset.BitSet
}

// NewFileType returns a FileType with the given bit set.
func NewFileType(bit uint) FileType {
	b := bitset.New(7)
	b.Set(bit)
	return FileType{bits: b}
}

func (f FileType) Is(bit uint) bool {
	if f.bits == nil {
		return false
	}
	return f.bits.Test(bit)
}

func (f FileType) IsDir() bool  { return f.Is(TypeDir) }
func (f FileType) IsFile() bool { return f.Is(TypeFile) }

// Permissions is the 9-bit POSIX rwxrwxrwx layout plus an "unknown" state,
// using the same encoding as file/perm.
type Permissions struct {
	Valid bool
	Mode  uint16
}

// StatResult is the outcome of a ProtocolHandler.Stat call.
type StatResult struct {
	ErrorCode    uint16
	Type         FileType
	OwnerUser    string
	OwnerGroup   string
	Permissions  Permissions
	Size         int64
	LastAccessed time.Time
	LastModified time.Time
	ContentType  string
	Uri          URI
}
