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

// Package runner supplies the two worker shapes the runtime core's thread
// model is built from: a joinable StartStop worker for
// anything the caller must be able to wait on, and a Detached task for
// spawn-and-forget work such as the EventDispatcher threads the timer
// engine fires on every tick. The StartStop surface is
// New/Start/Stop/IsRunning/Uptime/ErrorsLast/ErrorsList.
package runner

import (
	"context"
	"time"
)

// FuncRun is a blocking function executed by a StartStop worker; it must
// return once ctx is cancelled.
type FuncRun func(ctx context.Context) error

// StartStop is a joinable worker: Start launches FuncRun in a goroutine and
// returns immediately, Stop cancels it and waits for it to return.
type StartStop interface {
	// Start launches the worker. Calling Start while already running stops
	// the previous instance first. Start itself never blocks on the run
	// function; errors from it surface through ErrorsLast/ErrorsList.
	Start(ctx context.Context) error

	// Stop cancels the running worker and waits for it to exit. Safe to
	// call when not running, and safe to call concurrently — only the
	// first caller's cancellation actually runs the stop function.
	Stop(ctx context.Context) error

	// Restart stops then starts the worker.
	Restart(ctx context.Context) error

	IsRunning() bool

	// Uptime is the duration since the worker last started, or zero if it
	// is not currently running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error recorded from either the
	// start or the stop function, or nil.
	ErrorsLast() error

	// ErrorsList returns every error recorded so far, oldest first.
	ErrorsList() []error
}

// New returns a StartStop worker running start on Start and stop on Stop.
// Either may be nil; invoking a nil function records an "invalid start
// function" / "invalid stop function" error instead of panicking.
func New(start, stop FuncRun) StartStop {
	return newStartStop(start, stop)
}

// Detached is a spawn-and-forget task: it owns its own lifetime and tears
// itself down when FuncRun returns, with no caller-visible Stop. The task,
// not a bare goroutine, is the thing that owns its state until completion.
type Detached interface {
	// Running reports whether the task's FuncRun has not yet returned.
	Running() bool
}

// Spawn starts fn on its own goroutine, deriving its context from parent,
// and returns immediately. The returned Detached is purely observational:
// there is no Stop, matching the EventDispatcher worker's contract of
// running exactly once to completion and then discarding itself.
func Spawn(parent context.Context, fn FuncRun) Detached {
	return spawnDetached(parent, fn)
}
