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

// Package http implements the "http"/"https" scheme ProtocolHandler
// backend. GET drives Read, PUT drives Write; transient failures (5xx,
// connection resets) are retried through hashicorp/go-retryablehttp
// before surfacing as an error.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/httpcli"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/value"
)

// EntryPoint is this backend's module.ExtensionInfo.EntryPoint.
const EntryPoint = "ideallibrary.protocol.http"

// Info describes this backend for a module.Registry.
func Info() module.ExtensionInfo {
	return module.ExtensionInfo{
		EntryPoint:     EntryPoint,
		ExtensionType:  module.ProtocolHandler,
		ComponentOwner: "ideallibrary",
		Name:           "HTTP(S) handler",
		Description:    "Reads and writes resources over HTTP(S), with transient-error retry",
		AdditionalInfo: map[string]interface{}{
			"handlesProtocols": []string{"http", "https"},
		},
	}
}

// Handler is an http(s) protocol.Extension backed by a retryable client.
// One Handler serves one open request body at a time.
type Handler struct {
	object.Object

	mu     sync.Mutex
	client *retryablehttp.Client
	body   io.ReadCloser
	write  *bytes.Buffer
	uri    value.URI
	mode   protocol.OpenMode
	open   bool
	weight atomic.Uint64
}

// New constructs an http Handler, parented under parent.
func New(entryPoint string, parent object.Object) (protocol.Extension, error) {
	o, err := object.New(parent)
	if err != nil {
		return nil, err
	}

	// TLS/HTTP2/dial configuration is built through httpcli so it lives
	// in one place; retry policy on top of it is go-retryablehttp's,
	// covering transient 5xx/connection-reset handling.
	cli := httpcli.New(nil)
	cli.UseClientPackage("", nil, true, 0)

	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.Logger = nil
	c.HTTPClient = cli.Client()

	return &Handler{Object: o, client: c}, nil
}

func (h *Handler) Info() module.ExtensionInfo { return Info() }

func (h *Handler) Weight() uint64   { return h.weight.Load() }
func (h *Handler) IncrementWeight() { h.weight.Add(1) }

func (h *Handler) CanBeReusedWith(uri value.URI) bool {
	if uri.Scheme() != "http" && uri.Scheme() != "https" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.open
}

func (h *Handler) Open(ctx context.Context, uri value.URI, mode protocol.OpenMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open {
		return rterr.FileAlreadyExists.Error(nil)
	}

	if mode == protocol.Read {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri.Uri(), nil)
		if err != nil {
			return rterr.InvalidURI.Error(err)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return translateErr(err)
		}

		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			return rterr.FileNotFound.Error(nil)
		}
		if resp.StatusCode >= 400 {
			_ = resp.Body.Close()
			return rterr.UnknownFileError.Error(nil)
		}

		h.body = resp.Body
	} else {
		h.write = &bytes.Buffer{}
	}

	h.uri = uri
	h.mode = mode
	h.open = true
	return nil
}

func (h *Handler) Read(ctx context.Context, n int) (value.ByteStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.body == nil {
		return value.ByteStream{}, rterr.UnknownFileError.Error(nil)
	}

	buf := make([]byte, n)
	read, err := h.body.Read(buf)
	if err != nil && err != io.EOF {
		return value.ByteStream{}, rterr.UnknownFileError.Error(err)
	}

	return value.NewByteStream(buf[:read]), nil
}

func (h *Handler) Write(ctx context.Context, b value.ByteStream) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.write == nil {
		return 0, rterr.UnknownFileError.Error(nil)
	}
	return h.write.Write(b.Bytes())
}

func (h *Handler) Close() error {
	h.mu.Lock()
	uri := h.uri
	mode := h.mode
	body := h.body
	buf := h.write
	h.body = nil
	h.write = nil
	h.open = false
	h.mu.Unlock()

	if body != nil {
		return body.Close()
	}

	if buf == nil || mode == protocol.Read {
		return nil
	}

	req, err := retryablehttp.NewRequest(http.MethodPut, uri.Uri(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return rterr.InvalidURI.Error(err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return translateErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return rterr.UnknownFileError.Error(nil)
	}
	return nil
}

func (h *Handler) ListDir(ctx context.Context, uri value.URI) ([]value.URI, error) {
	return nil, rterr.UnknownFileError.Error(nil)
}

func (h *Handler) Mkdir(ctx context.Context, uri value.URI, mode perm.Perm) error {
	return rterr.UnknownFileError.Error(nil)
}

func (h *Handler) Rm(ctx context.Context, uri value.URI) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, uri.Uri(), nil)
	if err != nil {
		return rterr.InvalidURI.Error(err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return translateErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return rterr.FileNotFound.Error(nil)
	}
	if resp.StatusCode >= 400 {
		return rterr.UnknownFileError.Error(nil)
	}
	return nil
}

func (h *Handler) Stat(ctx context.Context, uri value.URI) value.StatResult {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, uri.Uri(), nil)
	if err != nil {
		return value.StatResult{ErrorCode: uint16(rterr.InvalidURI), Uri: uri}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return value.StatResult{ErrorCode: uint16(rterr.CouldNotConnect), Uri: uri}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return value.StatResult{ErrorCode: uint16(rterr.FileNotFound), Uri: uri}
	}
	if resp.StatusCode >= 400 {
		return value.StatResult{ErrorCode: uint16(rterr.UnknownFileError), Uri: uri}
	}

	return value.StatResult{
		Type:        value.NewFileType(value.TypeFile),
		Size:        resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
		Uri:         uri,
	}
}

func translateErr(err error) error {
	return rterr.CouldNotConnect.Error(err)
}

// Module adapts New/Info into a module.Module.
type Module struct{}

func (Module) Extensions() []module.ExtensionInfo { return []module.ExtensionInfo{Info()} }

func (Module) New(entryPoint string, parent object.Object) (module.Extension, error) {
	return New(entryPoint, parent)
}
