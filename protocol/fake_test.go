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

package protocol_test

import (
	"context"
	"sync/atomic"

	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/value"
)

type fakeApp struct{ deleted []object.Object }

func (f *fakeApp) DeferDelete(o object.Object) { f.deleted = append(f.deleted, o) }

// fakeHandler is a minimal protocol.Extension whose only interesting
// behavior is CanBeReusedWith matching a fixed scheme, so cache_test.go
// can drive Acquire/Release's reuse and eviction bookkeeping without a
// real builtin backend.
type fakeHandler struct {
	object.Object

	scheme string
	weight atomic.Uint64
	entry  string
}

func newFakeHandler(parent object.Object, entry, scheme string) protocol.Extension {
	o, err := object.New(parent)
	if err != nil {
		panic(err)
	}
	return &fakeHandler{Object: o, entry: entry, scheme: scheme}
}

func (h *fakeHandler) Info() module.ExtensionInfo {
	return module.ExtensionInfo{
		EntryPoint:     h.entry,
		ExtensionType:  module.ProtocolHandler,
		ComponentOwner: "test",
		Name:           h.entry,
		AdditionalInfo: map[string]interface{}{"handlesProtocols": []string{h.scheme}},
	}
}

func (h *fakeHandler) Weight() uint64   { return h.weight.Load() }
func (h *fakeHandler) IncrementWeight() { h.weight.Add(1) }

func (h *fakeHandler) CanBeReusedWith(uri value.URI) bool { return uri.Scheme() == h.scheme }

func (h *fakeHandler) Open(ctx context.Context, uri value.URI, mode protocol.OpenMode) error {
	return nil
}

func (h *fakeHandler) Read(ctx context.Context, n int) (value.ByteStream, error) {
	return value.ByteStream{}, nil
}

func (h *fakeHandler) Write(ctx context.Context, b value.ByteStream) (int, error) {
	return 0, rterr.UnknownFileError.Error(nil)
}

func (h *fakeHandler) Close() error { return nil }

func (h *fakeHandler) ListDir(ctx context.Context, uri value.URI) ([]value.URI, error) {
	return nil, nil
}

func (h *fakeHandler) Mkdir(ctx context.Context, uri value.URI, mode perm.Perm) error { return nil }

func (h *fakeHandler) Rm(ctx context.Context, uri value.URI) error { return nil }

func (h *fakeHandler) Stat(ctx context.Context, uri value.URI) value.StatResult {
	return value.StatResult{Uri: uri}
}

// fakeModule builds one fakeHandler per entry point it was given, each
// bound to its own scheme — enough for FindByScheme to tell them apart.
type fakeModule struct {
	entries map[string]string
}

func (m *fakeModule) Extensions() []module.ExtensionInfo {
	var infos []module.ExtensionInfo
	for entry, scheme := range m.entries {
		infos = append(infos, module.ExtensionInfo{
			EntryPoint:     entry,
			ExtensionType:  module.ProtocolHandler,
			ComponentOwner: "test",
			Name:           entry,
			AdditionalInfo: map[string]interface{}{"handlesProtocols": []string{scheme}},
		})
	}
	return infos
}

func (m *fakeModule) New(entryPoint string, parent object.Object) (module.Extension, error) {
	return newFakeHandler(parent, entryPoint, m.entries[entryPoint]), nil
}

func newFakeRegistry(entries map[string]string) *module.Registry {
	reg := module.NewRegistry(nil)
	reg.Register(&fakeModule{entries: entries})
	return reg
}
