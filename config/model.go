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

package config

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/runtimecore/app"
	"github.com/nabbar/runtimecore/logger"
)

type configModel struct {
	name string
	vpr  *viper.Viper
	root *cobra.Command

	mu   sync.Mutex
	logf logger.FuncLog

	startBefore, startAfter []FuncEvent
	stopBefore, stopAfter   []FuncEvent
}

func newModel(appName string) *configModel {
	c := &configModel{name: appName, vpr: viper.New()}

	c.vpr.SetDefault(KeyModuleSearchPath, "")
	c.vpr.SetDefault(KeySleepTime, int(app.DefaultSleep.Milliseconds()))
	c.vpr.SetDefault(KeyCacheSize, 10)
	c.vpr.SetEnvPrefix(envPrefix(appName))
	c.vpr.AutomaticEnv()

	c.root = &cobra.Command{
		Use:   appName,
		Short: fmt.Sprintf("%s runtime-core demo", appName),
	}

	flags := c.root.PersistentFlags()
	flags.String("module-search-path", "", "colon-separated protocol-handler module search path")
	flags.Int("sleep-time-ms", int(app.DefaultSleep.Milliseconds()), "main-loop idle sleep time, in milliseconds")
	flags.Int("cache-size", 10, "protocol-handler cache bound")

	_ = c.vpr.BindPFlag(KeyModuleSearchPath, flags.Lookup("module-search-path"))
	_ = c.vpr.BindPFlag(KeySleepTime, flags.Lookup("sleep-time-ms"))
	_ = c.vpr.BindPFlag(KeyCacheSize, flags.Lookup("cache-size"))

	return c
}

func envPrefix(appName string) string {
	out := make([]rune, 0, len(appName))
	for _, r := range appName {
		if r == '-' || r == ' ' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func (c *configModel) Viper() *viper.Viper         { return c.vpr }
func (c *configModel) RootCommand() *cobra.Command { return c.root }

func (c *configModel) RegisterDefaultLogger(fct logger.FuncLog) {
	c.mu.Lock()
	c.logf = fct
	c.mu.Unlock()

	if fct != nil {
		c.root.SetOut(fct().Clone())
	}
}

func (c *configModel) RegisterFuncStartBefore(fct FuncEvent) {
	c.mu.Lock()
	c.startBefore = append(c.startBefore, fct)
	c.mu.Unlock()
}

func (c *configModel) RegisterFuncStartAfter(fct FuncEvent) {
	c.mu.Lock()
	c.startAfter = append(c.startAfter, fct)
	c.mu.Unlock()
}

func (c *configModel) RegisterFuncStopBefore(fct FuncEvent) {
	c.mu.Lock()
	c.stopBefore = append(c.stopBefore, fct)
	c.mu.Unlock()
}

func (c *configModel) RegisterFuncStopAfter(fct FuncEvent) {
	c.mu.Lock()
	c.stopAfter = append(c.stopAfter, fct)
	c.mu.Unlock()
}

func (c *configModel) Start() error {
	c.mu.Lock()
	before, after := c.startBefore, c.startAfter
	c.mu.Unlock()

	if err := runAll(before); err != nil {
		return err
	}
	return runAll(after)
}

func (c *configModel) Stop() {
	c.mu.Lock()
	before, after := c.stopBefore, c.stopAfter
	c.mu.Unlock()

	_ = runAll(before)
	_ = runAll(after)
}

func runAll(fcts []FuncEvent) error {
	for _, fct := range fcts {
		if fct == nil {
			continue
		}
		if err := fct(); err != nil {
			return err
		}
	}
	return nil
}

func (c *configModel) Settings() Settings {
	return Settings{
		ModuleSearchPath: c.vpr.GetString(KeyModuleSearchPath),
		SleepTimeMs:      c.vpr.GetInt(KeySleepTime),
		CacheSize:        c.vpr.GetInt(KeyCacheSize),
	}
}
