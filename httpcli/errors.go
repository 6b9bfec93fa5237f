/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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
	"fmt"

	liberr "github.com/nabbar/runtimecore/errors"
)

// The package's CodeError range starts at MinPkgHttpCli (errors/modules.go).
const (
	ErrorParamsInvalid      liberr.CodeError = iota + liberr.MinPkgHttpCli // request has no method or URL
	ErrorCreateRequest                                                     // http.NewRequestWithContext failed
	ErrorSendRequest                                                       // the underlying http.Client.Do failed
	ErrorResponseInvalid                                                   // Do returned a nil response with no error
	ErrorResponseLoadBody                                                  // reading the response body failed
	ErrorResponseStatus                                                    // response status was not in validStatus
	ErrorResponseUnmarshall                                                // json.Unmarshal of the response body failed
)

func init() {
	if liberr.ExistInMapMessage(ErrorParamsInvalid) {
		panic(fmt.Errorf("error code collision with package httpcli"))
	}
	liberr.RegisterIdFctMessage(ErrorParamsInvalid, getMessage)
}

// requestError is the RequestError a failed exchange leaves on the
// Request: status line, buffered body, and the transport or decode error.
type requestError struct {
	c int
	s string
	b *bytes.Buffer
	e error
}

func (r *requestError) StatusCode() int { return r.c }
func (r *requestError) Status() string  { return r.s }
func (r *requestError) Error() error    { return r.e }

// Body never returns nil, so callers can read it unconditionally.
func (r *requestError) Body() *bytes.Buffer {
	if r.b == nil {
		return bytes.NewBuffer(nil)
	}
	return r.b
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorParamsInvalid:
		return "request is missing a method or url"
	case ErrorCreateRequest:
		return "error on creating a new http request"
	case ErrorSendRequest:
		return "error on sending a http request"
	case ErrorResponseInvalid:
		return "response is nil"
	case ErrorResponseLoadBody:
		return "error on reading response body"
	case ErrorResponseStatus:
		return "response status not in the accepted set"
	case ErrorResponseUnmarshall:
		return "error on unmarshalling response body"
	}

	return liberr.NullMessage
}
