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

package runner

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type startStop struct {
	mu sync.Mutex

	start FuncRun
	stop  FuncRun

	running bool
	startAt time.Time

	cancel context.CancelFunc
	done   chan struct{}

	errMu sync.Mutex
	errs  []error
}

func newStartStop(start, stop FuncRun) StartStop {
	return &startStop{start: start, stop: stop}
}

func (s *startStop) recordErr(err error) {
	if err == nil {
		return
	}
	s.errMu.Lock()
	s.errs = append(s.errs, err)
	s.errMu.Unlock()
}

func (s *startStop) ErrorsLast() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if len(s.errs) == 0 {
		return nil
	}
	return s.errs[len(s.errs)-1]
}

func (s *startStop) ErrorsList() []error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Start launches s.start on its own goroutine. If already running, the
// previous instance is stopped first.
func (s *startStop) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		_ = s.Stop(ctx)
		s.mu.Lock()
	}

	if s.start == nil {
		s.mu.Unlock()
		s.recordErr(fmt.Errorf("runner: invalid start function"))
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.cancel = cancel
	s.done = done
	s.running = true
	s.startAt = time.Now()
	fn := s.start
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.recordErr(fn(runCtx))
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return nil
}

// Stop cancels the running instance and waits for its goroutine to exit,
// then runs s.stop. Safe to call when not running and safe to call
// concurrently: only the first caller observes a live cancel/done pair.
func (s *startStop) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	// Nothing to stop: either never started, or a previous Stop call
	// already tore the instance down. Idempotent no-op.
	if cancel == nil && done == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
	}

	s.mu.Lock()
	s.running = false
	stop := s.stop
	s.mu.Unlock()

	if stop == nil {
		s.recordErr(fmt.Errorf("runner: invalid stop function"))
		return nil
	}

	s.recordErr(stop(ctx))
	return nil
}

func (s *startStop) Restart(ctx context.Context) error {
	if err := s.Stop(ctx); err != nil {
		return err
	}
	return s.Start(ctx)
}

func (s *startStop) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *startStop) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startAt)
}
