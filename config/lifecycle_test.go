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

package config_test

import (
	"errors"

	"github.com/nabbar/runtimecore/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bootstrap", func() {
	It("exposes viper defaults before any flag parsing", func() {
		c := config.New("runtimecored")
		s := c.Settings()

		Expect(s.CacheSize).To(Equal(10))
		Expect(s.SleepTimeMs).To(Equal(500))
		Expect(s.ModuleSearchPath).To(BeEmpty())
	})

	It("binds persistent flags onto the root command", func() {
		c := config.New("runtimecored")
		c.RootCommand().SetArgs([]string{"--cache-size=3", "--sleep-time-ms=250"})
		Expect(c.RootCommand().ParseFlags([]string{"--cache-size=3", "--sleep-time-ms=250"})).ToNot(HaveOccurred())

		s := c.Settings()
		Expect(s.CacheSize).To(Equal(3))
		Expect(s.SleepTimeMs).To(Equal(250))
	})

	It("runs Start hooks before-then-after", func() {
		c := config.New("runtimecored")

		var order []string
		c.RegisterFuncStartBefore(func() error { order = append(order, "before"); return nil })
		c.RegisterFuncStartAfter(func() error { order = append(order, "after"); return nil })

		Expect(c.Start()).ToNot(HaveOccurred())
		Expect(order).To(Equal([]string{"before", "after"}))
	})

	It("propagates a Start-before error without running Start-after", func() {
		c := config.New("runtimecored")

		ran := false
		c.RegisterFuncStartBefore(func() error { return errors.New("boom") })
		c.RegisterFuncStartAfter(func() error { ran = true; return nil })

		Expect(c.Start()).To(HaveOccurred())
		Expect(ran).To(BeFalse())
	})

	It("runs every Stop hook even if not started", func() {
		c := config.New("runtimecored")

		var order []string
		c.RegisterFuncStopBefore(func() error { order = append(order, "before"); return nil })
		c.RegisterFuncStopAfter(func() error { order = append(order, "after"); return nil })

		c.Stop()
		Expect(order).To(Equal([]string{"before", "after"}))
	})
})
