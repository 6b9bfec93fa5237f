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

// Package local implements the "file" scheme ProtocolHandler backend,
// reading and writing the host filesystem directly through os.
package local

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/value"
)

// EntryPoint is the module.ExtensionInfo.EntryPoint this backend registers
// under.
const EntryPoint = "ideallibrary.protocol.local"

// Info describes this backend for a module.Registry.
func Info() module.ExtensionInfo {
	return module.ExtensionInfo{
		EntryPoint:     EntryPoint,
		ExtensionType:  module.ProtocolHandler,
		ComponentOwner: "ideallibrary",
		Name:           "Local filesystem handler",
		Description:    "Reads and writes files on the local filesystem",
		AdditionalInfo: map[string]interface{}{
			"handlesProtocols": []string{"", "file"},
		},
	}
}

// Handler is a local-filesystem protocol.Extension: a single os.File
// opened against one path at a time, matching the "one handler, one
// in-flight target" contract the other builtin backends share.
type Handler struct {
	object.Object

	mu     sync.Mutex
	file   *os.File
	path   string
	weight atomic.Uint64
}

// New constructs a local Handler, parented under parent. entryPoint is
// accepted to satisfy module.Module.New's signature; this backend only
// ever registers one entry point.
func New(entryPoint string, parent object.Object) (protocol.Extension, error) {
	o, err := object.New(parent)
	if err != nil {
		return nil, err
	}
	return &Handler{Object: o}, nil
}

func (h *Handler) Info() module.ExtensionInfo { return Info() }

func (h *Handler) Weight() uint64   { return h.weight.Load() }
func (h *Handler) IncrementWeight() { h.weight.Add(1) }

// CanBeReusedWith reports whether this handler is idle (no open file), so
// it is reusable for any local-scheme URI.
func (h *Handler) CanBeReusedWith(uri value.URI) bool {
	if uri.Scheme() != "" && uri.Scheme() != "file" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file == nil
}

func (h *Handler) Open(ctx context.Context, uri value.URI, mode protocol.OpenMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file != nil {
		return rterr.FileAlreadyExists.Error(nil)
	}

	var flag int
	switch mode {
	case protocol.Write:
		flag = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
	case protocol.Append:
		flag = os.O_CREATE | os.O_APPEND | os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}

	f, err := os.OpenFile(uri.Path(), flag, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return rterr.FileNotFound.Error(err)
		}
		if os.IsPermission(err) {
			return rterr.InsufficientPermissions.Error(err)
		}
		return rterr.UnknownFileError.Error(err)
	}

	h.file = f
	h.path = uri.Path()
	return nil
}

func (h *Handler) Read(ctx context.Context, n int) (value.ByteStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return value.ByteStream{}, rterr.UnknownFileError.Error(nil)
	}

	buf := make([]byte, n)
	read, err := h.file.Read(buf)
	if err != nil && err != io.EOF {
		return value.ByteStream{}, rterr.UnknownFileError.Error(err)
	}

	return value.NewByteStream(buf[:read]), nil
}

func (h *Handler) Write(ctx context.Context, b value.ByteStream) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return 0, rterr.UnknownFileError.Error(nil)
	}

	n, err := h.file.Write(b.Bytes())
	if err != nil {
		return n, rterr.UnknownFileError.Error(err)
	}
	return n, nil
}

func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}

	err := h.file.Close()
	h.file = nil
	h.path = ""
	return err
}

func (h *Handler) ListDir(ctx context.Context, uri value.URI) ([]value.URI, error) {
	entries, err := os.ReadDir(uri.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rterr.FileNotFound.Error(err)
		}
		return nil, rterr.UnknownFileError.Error(err)
	}

	out := make([]value.URI, 0, len(entries))
	base := uri.Path()
	if base != "" && base[len(base)-1] != '/' {
		base += "/"
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		out = append(out, value.ParseURI("file://"+base+name))
	}
	return out, nil
}

func (h *Handler) Mkdir(ctx context.Context, uri value.URI, mode perm.Perm) error {
	if err := os.MkdirAll(uri.Path(), os.FileMode(mode)); err != nil {
		if os.IsPermission(err) {
			return rterr.InsufficientPermissions.Error(err)
		}
		return rterr.UnknownFileError.Error(err)
	}
	return nil
}

func (h *Handler) Rm(ctx context.Context, uri value.URI) error {
	if err := os.Remove(uri.Path()); err != nil {
		if os.IsNotExist(err) {
			return rterr.FileNotFound.Error(err)
		}
		if os.IsPermission(err) {
			return rterr.InsufficientPermissions.Error(err)
		}
		return rterr.UnknownFileError.Error(err)
	}
	return nil
}

func (h *Handler) Stat(ctx context.Context, uri value.URI) value.StatResult {
	info, err := os.Stat(uri.Path())
	if err != nil {
		code := rterr.UnknownFileError
		if os.IsNotExist(err) {
			code = rterr.FileNotFound
		} else if os.IsPermission(err) {
			code = rterr.InsufficientPermissions
		}
		return value.StatResult{ErrorCode: uint16(code), Uri: uri}
	}

	ft := value.NewFileType(value.TypeFile)
	if info.IsDir() {
		ft = value.NewFileType(value.TypeDir)
	} else if info.Mode()&os.ModeSymlink != 0 {
		ft = value.NewFileType(value.TypeSymlink)
	}

	return value.StatResult{
		Type:         ft,
		Permissions:  value.Permissions{Valid: true, Mode: uint16(info.Mode().Perm())},
		Size:         info.Size(),
		LastModified: info.ModTime(),
		LastAccessed: time.Time{},
		Uri:          uri,
	}
}

// Module adapts New/Info into a module.Module so a Registry can host this
// backend alongside the http and ftp ones.
type Module struct{}

func (Module) Extensions() []module.ExtensionInfo { return []module.ExtensionInfo{Info()} }

func (Module) New(entryPoint string, parent object.Object) (module.Extension, error) {
	return New(entryPoint, parent)
}
