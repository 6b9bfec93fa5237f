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

// Package httpcli builds and drives *http.Client instances: TLS, HTTP/2
// upgrade, and force-IP dialing live here so every HTTP consumer in the
// module shares one transport recipe. The http protocol backend feeds
// the built client into its retrying wrapper.
package httpcli

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	liberr "github.com/nabbar/runtimecore/errors"
)

// FctHttpClient supplies the *http.Client a Request runs on, resolved at
// send time so the transport can be swapped under a live Request.
type FctHttpClient func() *http.Client

// RequestError is the last failed exchange: status, raw body, and the
// transport error if any.
type RequestError interface {
	StatusCode() int
	Status() string
	Body() *bytes.Buffer
	Error() error
}

// Request assembles one HTTP exchange: endpoint, auth, headers, body,
// then Do / DoParse.
type Request interface {
	// Clone copies the endpoint, headers, params, client and body reader
	// into a fresh GET request; New returns an empty GET request that
	// keeps only the client function.
	Clone() Request
	New() Request

	SetClient(fct FctHttpClient)

	// Client returns the *http.Client UseClientPackage/SetClient built,
	// for embedding into another transport-level abstraction.
	Client() *http.Client

	// UseClientPackage builds and installs the FctHttpClient this Request
	// uses: a TLS config (nil for the Go default), an optional pinned IP
	// to force the dial to, HTTP/2 negotiation, and a global timeout.
	UseClientPackage(ip string, tlsCfg *tls.Config, http2Tr bool, globalTimeout time.Duration)

	// Endpoint parses uri as the target; SetUrl/GetUrl/AddPath/AddParams
	// shape it piecewise.
	Endpoint(uri string) error
	SetUrl(u *url.URL)
	GetUrl() *url.URL
	AddPath(path string)
	AddParams(key, val string)

	AuthBearer(token string)
	AuthBasic(user, pass string)
	ContentType(content string)

	Header(key, value string)
	Method(mtd string)

	// RequestJson marshals body as the JSON payload; RequestReader
	// streams it raw.
	RequestJson(body interface{}) error
	RequestReader(body io.Reader)

	// Error returns the last exchange's failure state.
	Error() RequestError

	// Do sends the request; DoParse additionally decodes the response
	// into model, accepting only validStatus codes.
	Do(ctx context.Context) (*http.Response, liberr.Error)
	DoParse(ctx context.Context, model interface{}, validStatus ...int) liberr.Error
}

// New returns an empty GET Request running on fct's client (the Go
// default client when nil).
func New(fct FctHttpClient) Request {
	return &request{
		s: sync.Mutex{},
		f: fct,
		h: make(url.Values),
		p: make(url.Values),
		b: bytes.NewBuffer(nil),
		m: http.MethodGet,
	}
}
