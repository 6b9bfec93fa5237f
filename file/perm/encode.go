/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package perm

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes p as its quoted octal string ("0644").
func (p Perm) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a quoted octal or symbolic permission string into p.
func (p *Perm) UnmarshalJSON(b []byte) error {
	return p.unmarshall(b)
}

// MarshalYAML encodes p as its octal string ("0644").
func (p Perm) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes an octal or symbolic permission string into p.
func (p *Perm) UnmarshalYAML(value *yaml.Node) error {
	return p.unmarshall([]byte(value.Value))
}

// MarshalTOML encodes p the same way MarshalJSON does.
func (p Perm) MarshalTOML() ([]byte, error) {
	return p.MarshalJSON()
}

// UnmarshalTOML decodes either a []byte or string permission value into p.
func (p *Perm) UnmarshalTOML(i interface{}) error {
	if b, k := i.([]byte); k {
		return p.unmarshall(b)
	}

	if b, k := i.(string); k {
		return p.parseString(b)
	}

	return fmt.Errorf("file perm: value not in valid format")
}

// MarshalText encodes p as its octal string ("0644").
func (p Perm) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes an octal or symbolic permission string into p.
func (p *Perm) UnmarshalText(b []byte) error {
	return p.unmarshall(b)
}

// MarshalCBOR encodes p.String() as a CBOR string.
func (p Perm) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.String())
}

// UnmarshalCBOR decodes a CBOR string into p.
func (p *Perm) UnmarshalCBOR(b []byte) error {
	var s string
	if e := cbor.Unmarshal(b, &s); e != nil {
		return e
	} else {
		return p.unmarshall([]byte(s))
	}
}
