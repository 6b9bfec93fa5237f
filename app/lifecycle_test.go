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

package app_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/nabbar/runtimecore/app"
	"github.com/nabbar/runtimecore/object"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Application", func() {
	Context("construction", func() {
		It("stores argv, name and options", func() {
			a := app.New([]string{"bin", "--flag"}, "demo")

			Expect(a.ArgvCount()).To(Equal(2))
			Expect(a.Argv()).To(Equal([]string{"bin", "--flag"}))
			Expect(a.Name()).To(Equal("demo"))

			_, ok := a.Option("color")
			Expect(ok).To(BeFalse())

			a.SetOption("color", "never")
			v, ok := a.Option("color")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("never"))
		})

		It("returns a snapshot of argv, not the backing slice", func() {
			a := app.New([]string{"bin"}, "demo")

			got := a.Argv()
			got[0] = "mutated"
			Expect(a.Argv()).To(Equal([]string{"bin"}))
		})

		It("is the root of its own object tree", func() {
			a := app.New(nil, "demo")

			o, err := object.New(a)
			Expect(err).ToNot(HaveOccurred())
			Expect(o.Application()).To(BeIdenticalTo(object.Application(a)))
			Expect(o.Parent()).To(BeIdenticalTo(object.Object(a)))
			Expect(a.Children()).To(ContainElement(object.Object(o)))
		})
	})

	Context("deferred deletion", func() {
		It("deduplicates DeferDelete", func() {
			a := app.New(nil, "demo")

			o, err := object.New(a)
			Expect(err).ToNot(HaveOccurred())

			a.DeferDelete(o)
			a.DeferDelete(o)
			Expect(a.DeferredCount()).To(Equal(1))
		})

		It("drains the list once per loop iteration", func() {
			a := app.New(nil, "demo", app.WithDefaultSleep(5*time.Millisecond))

			o, err := object.New(a)
			Expect(err).ToNot(HaveOccurred())

			o.DeleteLater()
			Expect(a.DeferredCount()).To(Equal(1))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go a.Exec(ctx)

			Eventually(o.Alive, time.Second).Should(BeFalse())
			Eventually(a.DeferredCount, time.Second).Should(Equal(0))
		})
	})

	Context("Exec / Quit", func() {
		It("returns the code passed to Quit", func() {
			a := app.New(nil, "demo", app.WithDefaultSleep(5*time.Millisecond))

			done := make(chan int, 1)
			go func() { done <- a.Exec(context.Background()) }()

			a.Quit(3)

			var code int
			Eventually(done, time.Second).Should(Receive(&code))
			Expect(code).To(Equal(3))
		})

		It("keeps the first quit code when Quit is called twice", func() {
			a := app.New(nil, "demo", app.WithDefaultSleep(5*time.Millisecond))

			a.Quit(1)
			a.Quit(2)

			Expect(a.Exec(context.Background())).To(Equal(1))
		})

		It("returns 0 when the context is cancelled", func() {
			a := app.New(nil, "demo", app.WithDefaultSleep(5*time.Millisecond))

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan int, 1)
			go func() { done <- a.Exec(ctx) }()

			cancel()

			var code int
			Eventually(done, time.Second).Should(Receive(&code))
			Expect(code).To(Equal(0))
		})
	})

	Context("file watches", func() {
		It("drains module-path events without stalling the loop", func() {
			dir, err := os.MkdirTemp("", "app-watch-")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { _ = os.RemoveAll(dir) })

			a := app.New(nil, "demo",
				app.WithDefaultSleep(5*time.Millisecond),
				app.WithModuleSearchWatch(dir),
			)

			done := make(chan int, 1)
			go func() { done <- a.Exec(context.Background()) }()

			Expect(os.WriteFile(filepath.Join(dir, "mod.so"), []byte("x"), 0o600)).To(Succeed())

			a.Quit(0)
			Eventually(done, time.Second).Should(Receive(Equal(0)))
		})
	})

	Context("module search path", func() {
		It("assembles both segments when both prefixes are set", func() {
			Expect(app.ModuleSearchPath("/opt/demo", "demo", "/usr")).
				To(Equal("/opt/demo/lib/demo/modules/:/usr/lib/ideal/modules/"))
		})

		It("omits the application segment when its prefix is empty", func() {
			Expect(app.ModuleSearchPath("", "demo", "/usr")).
				To(Equal("/usr/lib/ideal/modules/"))
		})

		It("omits the builtin segment when its prefix is empty", func() {
			Expect(app.ModuleSearchPath("/opt/demo", "demo", "")).
				To(Equal("/opt/demo/lib/demo/modules/"))
		})

		It("is empty when both prefixes are empty", func() {
			Expect(app.ModuleSearchPath("", "demo", "")).To(BeEmpty())
		})

		It("exports through the environment for child processes", func() {
			prev, had := os.LookupEnv(app.ModulePathEnv)
			DeferCleanup(func() {
				if had {
					_ = os.Setenv(app.ModulePathEnv, prev)
				} else {
					_ = os.Unsetenv(app.ModulePathEnv)
				}
			})

			Expect(app.ExportModuleSearchPath("/usr/lib/ideal/modules/")).To(Succeed())
			Expect(os.Getenv(app.ModulePathEnv)).To(Equal("/usr/lib/ideal/modules/"))
		})
	})
})
