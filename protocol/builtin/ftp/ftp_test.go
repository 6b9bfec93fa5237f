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

package ftp_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	bftp "github.com/nabbar/runtimecore/protocol/builtin/ftp"

	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/value"
)

type fakeApp struct{ deleted []object.Object }

func (f *fakeApp) DeferDelete(o object.Object) { f.deleted = append(f.deleted, o) }

var _ = Describe("ftp Handler", func() {
	var root object.Object

	BeforeEach(func() {
		root = object.NewRoot(&fakeApp{})
	})

	It("advertises only the ftp scheme", func() {
		info := bftp.Info()
		Expect(info.Handles("ftp")).To(BeTrue())
		Expect(info.Handles("http")).To(BeFalse())
	})

	It("reports CanBeReusedWith false for a non-ftp scheme", func() {
		ext, err := bftp.New(bftp.EntryPoint, root)
		Expect(err).ToNot(HaveOccurred())

		h := ext.(protocol.Handler)
		Expect(h.CanBeReusedWith(value.ParseURI("http://example.com/x"))).To(BeFalse())
	})

	It("reports CanBeReusedWith true for an idle handler against an ftp URI", func() {
		ext, err := bftp.New(bftp.EntryPoint, root)
		Expect(err).ToNot(HaveOccurred())

		h := ext.(protocol.Handler)
		Expect(h.CanBeReusedWith(value.ParseURI("ftp://ftp.example.com/x"))).To(BeTrue())
	})

	It("rejects Write as unsupported", func() {
		ext, err := bftp.New(bftp.EntryPoint, root)
		Expect(err).ToNot(HaveOccurred())

		h := ext.(protocol.Handler)
		_, err = h.Write(context.Background(), value.NewByteStream([]byte("x")))
		Expect(err).To(HaveOccurred())
	})

	It("increments weight", func() {
		ext, err := bftp.New(bftp.EntryPoint, root)
		Expect(err).ToNot(HaveOccurred())

		h := ext.(protocol.Handler)
		Expect(h.Weight()).To(Equal(uint64(0)))
		h.IncrementWeight()
		Expect(h.Weight()).To(Equal(uint64(1)))
	})
})
