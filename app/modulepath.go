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

package app

import (
	"os"
	"strings"
)

// ModulePathEnv is the environment variable the module search path is
// exported through, so child processes inherit it.
const ModulePathEnv = "RUNTIMECORE_MODULE_PATH"

// ModuleSearchPath assembles the colon-separated search path
// "{appPrefix}/lib/{appName}/modules/:{builtinPrefix}/lib/ideal/modules/",
// with either prefix segment omitted entirely when empty.
func ModuleSearchPath(appPrefix, appName, builtinPrefix string) string {
	var parts []string

	if seg := strings.TrimSuffix(appPrefix, "/") + "/lib/" + appName + "/modules/"; appPrefix != "" {
		parts = append(parts, seg)
	}

	if seg := strings.TrimSuffix(builtinPrefix, "/") + "/lib/ideal/modules/"; builtinPrefix != "" {
		parts = append(parts, seg)
	}

	return strings.Join(parts, ":")
}

// ExportModuleSearchPath sets ModulePathEnv in the current process
// environment so children inherit it.
func ExportModuleSearchPath(path string) error {
	return os.Setenv(ModulePathEnv, path)
}
