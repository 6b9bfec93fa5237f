/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package httpcli

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/http2"

	liberr "github.com/nabbar/runtimecore/errors"
)

// request is the concrete Request. The mutex serializes every accessor;
// the error field holds the last failed exchange until the next Do.
type request struct {
	s sync.Mutex

	f FctHttpClient
	u *url.URL
	h url.Values
	p url.Values
	b io.Reader
	m string
	e *requestError
}

// Clone copies the endpoint, headers and params into a fresh GET request
// sharing the same client and body reader.
func (r *request) Clone() Request {
	cp := *r.u

	n := &request{
		f: r.f,
		u: &cp,
		h: make(url.Values, len(r.h)),
		p: make(url.Values, len(r.p)),
		b: r.b,
		m: http.MethodGet,
	}

	for k, v := range r.h {
		n.h[k] = v
	}
	for k, v := range r.p {
		n.p[k] = v
	}

	return n
}

// New resets everything but the client function.
func (r *request) New() Request {
	return &request{
		f: r.f,
		h: make(url.Values),
		p: make(url.Values),
		b: bytes.NewBuffer(nil),
		m: http.MethodGet,
	}
}

// client resolves the installed FctHttpClient, falling back to a zero
// http.Client. Callers hold the lock.
func (r *request) client() *http.Client {
	if r.f != nil {
		if c := r.f(); c != nil {
			return c
		}
	}

	return &http.Client{}
}

// Client exposes the *http.Client UseClientPackage/SetClient built, for
// callers that need to hand it to another transport-level abstraction
// (protocol/builtin/http composes one into a retryablehttp.Client so TLS
// /HTTP2/dial configuration stays in one place while retry policy stays in
// go-retryablehttp) instead of driving requests through Do/DoParse.
func (r *request) Client() *http.Client {
	r.s.Lock()
	defer r.s.Unlock()
	return r.client()
}

func (r *request) SetClient(fct FctHttpClient) {
	r.s.Lock()
	defer r.s.Unlock()
	r.f = fct
}

// UseClientPackage installs a client function building the package's
// standard transport: optional TLS config, optional pinned-IP dialing
// (the URL's hostname still drives TLS SNI and Host), optional HTTP/2
// upgrade, and a global timeout.
func (r *request) UseClientPackage(ip string, tlsCfg *tls.Config, http2Tr bool, globalTimeout time.Duration) {
	r.s.Lock()
	defer r.s.Unlock()

	r.f = func() *http.Client {
		tr := &http.Transport{TLSClientConfig: tlsCfg}

		if ip != "" {
			tr.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				_, port, e := net.SplitHostPort(addr)
				if e != nil {
					port = "443"
				}
				d := &net.Dialer{}
				return d.DialContext(ctx, network, net.JoinHostPort(ip, port))
			}
		}

		if http2Tr {
			_ = http2.ConfigureTransport(tr)
		}

		return &http.Client{Transport: tr, Timeout: globalTimeout}
	}
}

func (r *request) Endpoint(uri string) error {
	u, e := url.Parse(uri)
	if e != nil {
		return e
	}

	r.SetUrl(u)
	return nil
}

func (r *request) SetUrl(u *url.URL) {
	r.s.Lock()
	defer r.s.Unlock()
	r.u = u
}

func (r *request) GetUrl() *url.URL {
	r.s.Lock()
	defer r.s.Unlock()
	return r.u
}

// AddPath joins one segment onto the endpoint's path, tolerating leading
// or trailing slashes on the segment.
func (r *request) AddPath(path string) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.u == nil {
		return
	}

	path = strings.Trim(path, "/")
	r.u.Path = filepath.Join(r.u.Path, path)
}

func (r *request) AddParams(key, val string) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.p == nil {
		r.p = make(url.Values)
	}

	r.p.Set(key, val)
}

func (r *request) AuthBearer(token string) {
	r.Header("Authorization", "Bearer "+token)
}

func (r *request) AuthBasic(user, pass string) {
	r.Header("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
}

func (r *request) ContentType(content string) {
	r.Header("Content-Type", content)
}

func (r *request) Header(key, value string) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.h == nil {
		r.h = make(url.Values)
	}

	r.h.Set(key, value)
}

func (r *request) Method(mtd string) {
	r.s.Lock()
	defer r.s.Unlock()
	r.m = mtd
}

// RequestJson marshals body and installs it with a JSON content type.
func (r *request) RequestJson(body interface{}) error {
	p, e := json.Marshal(body)
	if e != nil {
		return e
	}

	r.RequestReader(bytes.NewBuffer(p))
	r.ContentType("application/json")
	return nil
}

func (r *request) RequestReader(body io.Reader) {
	r.s.Lock()
	defer r.s.Unlock()
	r.b = body
}

func (r *request) Error() RequestError {
	r.s.Lock()
	defer r.s.Unlock()
	return r.e
}

// Do builds and sends the request, recording a transport failure into the
// request's error state.
func (r *request) Do(ctx context.Context) (*http.Response, liberr.Error) {
	r.s.Lock()
	defer r.s.Unlock()

	if r.m == "" || r.u == nil || r.u.String() == "" {
		return nil, ErrorParamsInvalid.Error(nil)
	}

	r.e = nil

	req, err := r.makeRequest(ctx)
	if err != nil {
		return nil, err
	}

	rsp, e := r.client().Do(req)
	if e != nil {
		r.e = &requestError{e: e}
		return nil, ErrorSendRequest.Error(e)
	}

	return rsp, nil
}

// makeRequest assembles the http.Request: method, URL, body, headers, and
// the accumulated query params. Callers hold the lock.
func (r *request) makeRequest(ctx context.Context) (*http.Request, liberr.Error) {
	req, err := http.NewRequestWithContext(ctx, r.m, r.u.String(), r.b)
	if err != nil {
		return nil, ErrorCreateRequest.Error(err)
	}

	for k := range r.h {
		req.Header.Set(k, r.h.Get(k))
	}

	q := req.URL.Query()
	for k := range r.p {
		q.Add(k, r.p.Get(k))
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// DoParse sends the request, buffers the whole body, gates on validStatus
// (empty = any), and decodes JSON into model. Each failure step lands in
// the request's error state with the buffered body attached.
func (r *request) DoParse(ctx context.Context, model interface{}, validStatus ...int) liberr.Error {
	rsp, err := r.Do(ctx)
	if err != nil {
		return err
	}
	if rsp == nil {
		return ErrorResponseInvalid.Error(nil)
	}

	defer func() {
		if !rsp.Close && rsp.Body != nil {
			_ = rsp.Body.Close()
		}
	}()

	b := bytes.NewBuffer(nil)

	if rsp.Body != nil {
		if _, e := io.Copy(b, rsp.Body); e != nil {
			r.e = &requestError{c: rsp.StatusCode, s: rsp.Status, b: b, e: e}
			return ErrorResponseLoadBody.Error(e)
		}
	}

	if !statusAllowed(validStatus, rsp.StatusCode) {
		r.e = &requestError{c: rsp.StatusCode, s: rsp.Status, b: b}
		return ErrorResponseStatus.Error(nil)
	}

	if e := json.Unmarshal(b.Bytes(), model); e != nil {
		r.e = &requestError{c: rsp.StatusCode, s: rsp.Status, b: b, e: e}
		return ErrorResponseUnmarshall.Error(e)
	}

	return nil
}

func statusAllowed(valid []int, status int) bool {
	if len(valid) < 1 {
		return true
	}

	for _, c := range valid {
		if c == status {
			return true
		}
	}

	return false
}
