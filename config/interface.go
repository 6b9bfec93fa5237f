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

// Package config is the viper+cobra bootstrap for the demo binary
// (cmd/runtimecored): a before/after hook pair around Start/Stop, a
// viper-backed settings tree, and a RegisterDefaultLogger seam. It covers
// just the settings this runtime actually has: module search path, default
// sleep time, and protocol-cache size.
package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/runtimecore/logger"
)

// Keys are the viper settings this bootstrap reads: flat dotted keys bound
// to both a pflag and an env var.
const (
	KeyModuleSearchPath = "module.search_path"
	KeySleepTime        = "app.sleep_time_ms"
	KeyCacheSize        = "protocol.cache_size"
)

// FuncEvent is a before/after lifecycle hook. It returns a plain error
// since this package does not otherwise depend on the errors/rterr
// CodeError chain.
type FuncEvent func() error

// Settings is the typed view over the viper tree this bootstrap exposes to
// cmd/runtimecored, so the demo binary's command handlers don't each
// reach into viper directly.
type Settings struct {
	ModuleSearchPath string
	SleepTimeMs      int
	CacheSize        int
}

// Bootstrap wires viper (file/env configuration) and cobra (CLI surface)
// together, with before/after hooks around a Start/Stop pair.
type Bootstrap interface {
	// Viper returns the underlying instance so callers can BindPFlag
	// additional demo-specific flags.
	Viper() *viper.Viper

	// RootCommand returns the cobra.Command the demo binary's Execute()
	// runs; sub-commands (stat/get/mkdir) are added to it by cmd/runtimecored.
	RootCommand() *cobra.Command

	// RegisterDefaultLogger wires the logger.FuncLog every Start/Stop hook
	// and cobra command log line is written through.
	RegisterDefaultLogger(fct logger.FuncLog)

	// RegisterFuncStartBefore / RegisterFuncStartAfter run around Start.
	RegisterFuncStartBefore(fct FuncEvent)
	RegisterFuncStartAfter(fct FuncEvent)

	// RegisterFuncStopBefore / RegisterFuncStopAfter run around Stop.
	RegisterFuncStopBefore(fct FuncEvent)
	RegisterFuncStopAfter(fct FuncEvent)

	// Start runs every StartBefore hook, then every StartAfter hook.
	Start() error

	// Stop runs every StopBefore hook, then every StopAfter hook.
	Stop()

	// Settings returns the current typed view of the viper tree.
	Settings() Settings
}

// New returns a Bootstrap named appName (used as the cobra root command's
// Use field and short description, and to derive the environment-variable
// prefix).
func New(appName string) Bootstrap {
	return newModel(appName)
}
