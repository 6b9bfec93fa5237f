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
	"os"
	"strconv"
	"strings"
)

// stripQuotes removes surrounding whitespace and any quoting a config file
// may have left around the permission string.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	return strings.ReplaceAll(s, "'", "")
}

// parseString accepts the octal form ("0644") first, falling back to the
// ls -l symbolic form ("rwxr-xr-x", optionally with a leading type
// character).
func parseString(s string) (Perm, error) {
	s = stripQuotes(s)

	if v, err := strconv.ParseUint(s, 8, 32); err == nil {
		return Perm(v), nil
	}

	return parseSymbolic(s)
}

// typeBits maps the leading ls -l type character onto os.FileMode bits.
var typeBits = map[byte]os.FileMode{
	'-': 0,
	'd': os.ModeDir,
	'l': os.ModeSymlink,
	'c': os.ModeDevice | os.ModeCharDevice,
	'b': os.ModeDevice,
	'p': os.ModeNamedPipe,
	's': os.ModeSocket,
	'D': os.ModeIrregular,
}

// symBits pins, position by position, the letter each of the nine
// permission characters must be and the bit it contributes.
var symBits = [9]struct {
	ch  byte
	bit os.FileMode
}{
	{'r', 0400}, {'w', 0200}, {'x', 0100},
	{'r', 0040}, {'w', 0020}, {'x', 0010},
	{'r', 0004}, {'w', 0002}, {'x', 0001},
}

func parseSymbolic(s string) (Perm, error) {
	s = stripQuotes(s)

	var mode os.FileMode

	switch len(s) {
	case 9:
	case 10:
		bits, ok := typeBits[s[0]]
		if !ok {
			return 0, fmt.Errorf("invalid file type character: %c", s[0])
		}
		mode = bits
		s = s[1:]
	default:
		return 0, fmt.Errorf("invalid permission")
	}

	for i, want := range symBits {
		switch s[i] {
		case want.ch:
			mode |= want.bit
		case '-':
		default:
			return 0, fmt.Errorf("invalid permission character at position %d: %c", i, s[i])
		}
	}

	return Perm(mode), nil
}

func (p *Perm) parseString(s string) error {
	v, err := parseString(s)
	if err != nil {
		return err
	}

	*p = v
	return nil
}

func (p *Perm) unmarshall(val []byte) error {
	v, err := ParseByte(val)
	if err != nil {
		return err
	}

	*p = v
	return nil
}
