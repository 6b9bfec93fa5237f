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

// Package module implements the extension/module registry: a
// Module enumerates ExtensionInfo records describing what it can
// construct; a Registry holds the set of loaded Modules, answers
// predicate-filtered lookups (the Protocol-handler cache's "first
// extension whose ExtensionInfo satisfies ..." query), and tracks
// per-Module refcounts so unloadUnneededDynamicLibraries (app's main loop)
// can release a Module once its last Extension instance is destroyed.
//
// The actual dynamic-library loading mechanics are abstracted away — Go
// has no portable dlopen — so a Module here is anything the host process
// constructs and hands to Register; the registry's job is the bookkeeping
// (refcounts, unload list, predicate search).
package module

import (
	"github.com/mitchellh/mapstructure"

	"github.com/nabbar/runtimecore/object"
)

// ExtensionType identifies what capability an ExtensionInfo's entry point
// constructs. ProtocolHandler is the only well-known value the core itself
// consumes; others are opaque to the registry.
type ExtensionType uint8

const (
	Unknown ExtensionType = iota
	ProtocolHandler
)

// ExtensionInfo describes one constructible extension.
type ExtensionInfo struct {
	EntryPoint     string `validate:"required"`
	ExtensionType  ExtensionType
	AdditionalInfo map[string]interface{}
	ComponentOwner string `validate:"required"`
	Name           string `validate:"required"`
	Description    string
	Author         string
	Version        string
}

// ProtocolHandlerInfo is AdditionalInfo decoded for ExtensionType ==
// ProtocolHandler.
type ProtocolHandlerInfo struct {
	HandlesProtocols []string `mapstructure:"handlesProtocols"`
}

// DecodeAdditionalInfo decodes info.AdditionalInfo into out (normally a
// *ProtocolHandlerInfo) through mapstructure.
func DecodeAdditionalInfo(info ExtensionInfo, out interface{}) error {
	return mapstructure.Decode(info.AdditionalInfo, out)
}

// Handles reports whether a ProtocolHandler ExtensionInfo's
// handlesProtocols list contains scheme ("" matches bare paths, per spec
// §6).
func (i ExtensionInfo) Handles(scheme string) bool {
	if i.ExtensionType != ProtocolHandler {
		return false
	}

	var add ProtocolHandlerInfo
	if err := DecodeAdditionalInfo(i, &add); err != nil {
		return false
	}

	for _, s := range add.HandlesProtocols {
		if s == scheme {
			return true
		}
	}
	return false
}

// Extension is one constructed instance of an ExtensionInfo's entry point,
// parented into the caller's object tree like any other Object.
type Extension interface {
	object.Object
	Info() ExtensionInfo
}

// Module is a shared library's exported constructor surface: it
// enumerates what it can build and builds it on demand.
type Module interface {
	// Extensions lists every ExtensionInfo this Module can construct.
	Extensions() []ExtensionInfo

	// New constructs the Extension for entryPoint, parented to parent.
	New(entryPoint string, parent object.Object) (Extension, error)
}
