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

// Package ftp implements the "ftp" scheme ProtocolHandler backend,
// wrapping the ftpclient package: one Handler owns one
// ftpclient.FTPClient, reconnecting transparently on every command the
// way ftpclient.Check() already does.
package ftp

import (
	"context"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/ftpclient"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/value"
)

// EntryPoint is this backend's module.ExtensionInfo.EntryPoint.
const EntryPoint = "ideallibrary.protocol.ftp"

// Info describes this backend for a module.Registry.
func Info() module.ExtensionInfo {
	return module.ExtensionInfo{
		EntryPoint:     EntryPoint,
		ExtensionType:  module.ProtocolHandler,
		ComponentOwner: "ideallibrary",
		Name:           "FTP handler",
		Description:    "Reads and writes files over FTP",
		AdditionalInfo: map[string]interface{}{
			"handlesProtocols": []string{"ftp"},
		},
	}
}

// Handler is an FTP protocol.Extension. It lazily dials a new
// ftpclient.FTPClient the first time it sees a host, and reuses it for
// every subsequent request to the same host (CanBeReusedWith).
type Handler struct {
	object.Object

	mu     sync.Mutex
	client ftpclient.FTPClient
	host   string
	resp   io.ReadCloser
	open   bool
	weight atomic.Uint64
}

// New constructs an FTP Handler, parented under parent. The handler dials
// lazily on first Open; New itself never touches the network.
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

// CanBeReusedWith reports whether this handler's live connection (if any)
// already targets uri's host.
func (h *Handler) CanBeReusedWith(uri value.URI) bool {
	if uri.Scheme() != "ftp" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open {
		return false
	}
	return h.client == nil || h.host == uri.Host()
}

func (h *Handler) dial(uri value.URI) error {
	if h.client != nil && h.host == uri.Host() {
		return nil
	}

	port := uri.Port()
	if port < 0 {
		port = 21
	}

	cfg := &ftpclient.Config{
		Hostname:    net.JoinHostPort(uri.Host(), strconv.Itoa(port)),
		Login:       uri.Username(),
		Password:    uri.Password(),
		ConnTimeout: 30 * time.Second,
	}
	cfg.RegisterContext(func() context.Context { return context.Background() })

	cli, err := ftpclient.New(cfg)
	if err != nil {
		return translate(err)
	}

	h.client = cli
	h.host = uri.Host()
	return nil
}

func (h *Handler) Open(ctx context.Context, uri value.URI, mode protocol.OpenMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open {
		return rterr.FileAlreadyExists.Error(nil)
	}

	if err := h.dial(uri); err != nil {
		return err
	}

	if mode == protocol.Read {
		resp, err := h.client.Retr(uri.Path())
		if err != nil {
			return translate(err)
		}
		h.resp = resp
	}

	h.open = true
	return nil
}

func (h *Handler) Read(ctx context.Context, n int) (value.ByteStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.resp == nil {
		return value.ByteStream{}, rterr.UnknownFileError.Error(nil)
	}

	buf := make([]byte, n)
	read, err := h.resp.Read(buf)
	if err != nil && err != io.EOF {
		return value.ByteStream{}, rterr.UnknownFileError.Error(err)
	}
	return value.NewByteStream(buf[:read]), nil
}

// Write is not supported: it always fails with UnknownFileError, and the
// handler has no other upload path.
func (h *Handler) Write(ctx context.Context, b value.ByteStream) (int, error) {
	return 0, rterr.UnknownFileError.Error(nil)
}

func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.resp != nil {
		_ = h.resp.Close()
		h.resp = nil
	}
	h.open = false
	return nil
}

func (h *Handler) ListDir(ctx context.Context, uri value.URI) ([]value.URI, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.dial(uri); err != nil {
		return nil, err
	}

	entries, err := h.client.List(uri.Path())
	if err != nil {
		return nil, translate(err)
	}

	out := make([]value.URI, 0, len(entries))
	base := uri.Uri()
	for _, e := range entries {
		out = append(out, value.ParseURI(base+"/"+e.Name))
	}
	return out, nil
}

func (h *Handler) Mkdir(ctx context.Context, uri value.URI, mode perm.Perm) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.dial(uri); err != nil {
		return err
	}
	if err := h.client.MakeDir(uri.Path()); err != nil {
		return translate(err)
	}
	return nil
}

func (h *Handler) Rm(ctx context.Context, uri value.URI) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.dial(uri); err != nil {
		return err
	}
	if err := h.client.Delete(uri.Path()); err != nil {
		return translate(err)
	}
	return nil
}

func (h *Handler) Stat(ctx context.Context, uri value.URI) value.StatResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.dial(uri); err != nil {
		return value.StatResult{ErrorCode: uint16(rterr.CouldNotConnect), Uri: uri}
	}

	size, err := h.client.FileSize(uri.Path())
	if err != nil {
		return value.StatResult{ErrorCode: uint16(rterr.FileNotFound), Uri: uri}
	}

	modTime, _ := h.client.GetTime(uri.Path())

	return value.StatResult{
		Type:         value.NewFileType(value.TypeFile),
		Size:         size,
		LastModified: modTime,
		Uri:          uri,
	}
}

func translate(err error) error {
	return rterr.CouldNotConnect.Error(err)
}

// Module adapts New/Info into a module.Module.
type Module struct{}

func (Module) Extensions() []module.ExtensionInfo { return []module.ExtensionInfo{Info()} }

func (Module) New(entryPoint string, parent object.Object) (module.Extension, error) {
	return New(entryPoint, parent)
}
