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

// Command runtimecored is the demo binary exercising every package in this
// module: cobra/viper (config) for its CLI surface, an Application with
// the three builtin protocol handlers registered, a File pipeline driven
// synchronously per sub-command invocation, and a Monitor optionally
// exposed over a Prometheus /metrics endpoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nabbar/runtimecore/config"
	"github.com/nabbar/runtimecore/logger"
)

const appName = "runtimecored"

// shutdownTimeout bounds how long main waits for the metrics server to
// drain in-flight scrapes on the way out.
const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.New()
	logf := func() logger.Logger { return log }

	boot := config.New(appName)
	boot.RegisterDefaultLogger(logf)

	var metricsAddr string
	boot.RootCommand().PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "",
		"if set, serve Prometheus metrics on this address (e.g. :9090) for the duration of the command")

	var rt *runtime
	var metrics *http.Server

	root := boot.RootCommand()
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		r, err := newRuntime(appName, boot.Settings(), logf)
		if err != nil {
			return err
		}
		rt = r

		if metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			metrics = &http.Server{Addr: metricsAddr, Handler: mux}

			go func() {
				if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logf().Error("metrics server stopped: %v", err)
				}
			}()
		}
		return nil
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if metrics == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return metrics.Shutdown(ctx)
	}

	getRuntime := func() *runtime { return rt }
	root.AddCommand(
		newStatCommand(getRuntime),
		newGetCommand(getRuntime),
		newMkdirCommand(getRuntime),
		newServeCommand(getRuntime),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	root.SetContext(ctx)

	if err := boot.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer boot.Stop()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
