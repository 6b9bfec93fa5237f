/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package perm

import (
	"fmt"
	"math"
	"os"
)

// capped returns p's value, saturating at max instead of wrapping when the
// target integer type is narrower than the stored permission.
func (p Perm) capped(max uint64) uint64 {
	if v := uint64(p); v <= max {
		return v
	}
	return max
}

// FileMode converts p back to the os.FileMode the os package consumes.
func (p Perm) FileMode() os.FileMode {
	return os.FileMode(p.Uint32())
}

// String renders p as an octal literal ("0644").
func (p Perm) String() string {
	return fmt.Sprintf("%#o", p.Uint64())
}

// The integer accessors saturate at the target type's maximum rather than
// truncating.

func (p Perm) Int64() int64 { return int64(p.capped(math.MaxInt64)) }

func (p Perm) Int32() int32 { return int32(p.capped(math.MaxInt32)) }

func (p Perm) Int() int { return int(p.capped(math.MaxInt)) }

func (p Perm) Uint64() uint64 { return uint64(p) }

func (p Perm) Uint32() uint32 { return uint32(p.capped(math.MaxUint32)) }

func (p Perm) Uint() uint { return uint(p.capped(math.MaxUint)) }
