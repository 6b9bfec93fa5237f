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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	liberr "github.com/nabbar/runtimecore/errors"
	"github.com/nabbar/runtimecore/file"
	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/signal"
	"github.com/nabbar/runtimecore/value"
)

// newServeCommand runs the Application's own main loop (processEvents,
// processDelayedDeletions, checkFileWatches, unloadUnneededDynamicLibraries)
// until ctx is cancelled, demonstrating the timer wheel and deferred
// -deletion machinery the one-shot stat/get/mkdir commands never exercise.
func newServeCommand(get runtimeGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the Application main loop until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := get()

			if err := rt.mon.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() {
				// Use a fresh context for the shutdown join: cmd.Context()
				// is already cancelled by the time Exec returns, and Stop's
				// own wait-for-done select treats that as "don't bother
				// waiting" rather than "wait for the real exit".
				stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = rt.mon.Stop(stopCtx)
			}()

			code := rt.app.Exec(cmd.Context())
			if code != 0 {
				return fmt.Errorf("application exited with code %d", code)
			}
			return nil
		},
	}
}

// joinAndWait starts th, then immediately Stops it: for a file.Joinable
// Thread, Stop blocks until the job's goroutine has actually returned
// (runner.StartStop's join semantics — see runner/model.go), so by the
// time it returns every signal the job is going to emit has already fired.
func joinAndWait(cmd *cobra.Command, th file.Thread) error {
	if err := th.Start(cmd.Context()); err != nil {
		return err
	}
	return th.Stop(cmd.Context())
}

// runtimeGetter resolves the *runtime built by main's PersistentPreRunE,
// once cobra has parsed flags into config.Settings. Commands are
// constructed before that hook runs, so each RunE resolves it lazily
// rather than capturing a *runtime directly.
type runtimeGetter func() *runtime

func newStatCommand(get runtimeGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <uri>",
		Short: "stat a protocol-handler resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := get()
			uri := value.ParseURI(args[0])
			if !uri.Valid() {
				return fmt.Errorf("invalid uri: %s", args[0])
			}

			var (
				result value.StatResult
				got    bool
				failed liberr.CodeError
			)

			signal.ConnectStatic(rt.file.StatResult(), func(r value.StatResult) {
				result, got = r, true
			})
			signal.ConnectStatic(rt.file.Error(), func(c liberr.CodeError) {
				failed = c
			})

			if err := joinAndWait(cmd, rt.file.Stat(uri, file.Joinable)); err != nil {
				return err
			}
			if failed != 0 {
				return fmt.Errorf("stat failed: %s", failed.Message())
			}
			if !got {
				return fmt.Errorf("stat produced no result")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "uri:        %s\n", result.Uri.Uri())
			fmt.Fprintf(out, "size:       %d\n", result.Size)
			fmt.Fprintf(out, "is-dir:     %v\n", result.Type.IsDir())
			fmt.Fprintf(out, "modified:   %s\n", result.LastModified.Format(time.RFC3339))
			fmt.Fprintf(out, "permission: %s\n", perm.Perm(result.Permissions.Mode))
			return nil
		},
	}
}

func newGetCommand(get runtimeGetter) *cobra.Command {
	var maxBytes int64
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "get <uri>",
		Short: "fetch a resource, streaming bytes to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := get()
			uri := value.ParseURI(args[0])
			if !uri.Valid() {
				return fmt.Errorf("invalid uri: %s", args[0])
			}

			var bar *progressBar
			if !noProgress {
				bar = newProgressBar(uri.Filename())
			}
			defer bar.done()

			var failed liberr.CodeError

			signal.ConnectStatic(rt.file.DataRead(), func(b value.ByteStream) {
				bar.advance(int64(b.Len()))
				_, _ = cmd.OutOrStdout().Write(b.Bytes())
			})
			signal.ConnectStatic(rt.file.DirRead(), func(entries []value.URI) {
				for _, e := range entries {
					fmt.Fprintln(cmd.ErrOrStderr(), e.Uri())
				}
			})
			signal.ConnectStatic(rt.file.Error(), func(c liberr.CodeError) {
				failed = c
			})

			if err := joinAndWait(cmd, rt.file.Get(uri, maxBytes, file.Joinable)); err != nil {
				return err
			}
			if failed != 0 {
				return fmt.Errorf("get failed: %s", failed.Message())
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "stop reading once this many bytes have been read; the last chunk is not trimmed (0 = unbounded)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the mpb progress bar on stderr")
	return cmd
}

func newMkdirCommand(get runtimeGetter) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "mkdir <uri>",
		Short: "create a directory through a protocol handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := get()
			uri := value.ParseURI(args[0])
			if !uri.Valid() {
				return fmt.Errorf("invalid uri: %s", args[0])
			}

			p, err := perm.Parse(mode)
			if err != nil {
				return fmt.Errorf("invalid --mode %q: %w", mode, err)
			}

			var failed liberr.CodeError
			signal.ConnectStatic(rt.file.Error(), func(c liberr.CodeError) {
				failed = c
			})

			if err = joinAndWait(cmd, rt.file.Mkdir(uri, p, file.Joinable)); err != nil {
				return err
			}
			if failed != 0 {
				return fmt.Errorf("mkdir failed: %s", failed.Message())
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "0755", "directory permission bits")
	return cmd
}
