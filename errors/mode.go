/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"fmt"
	"strings"
)

// ErrorMode selects how Error() renders: code only, code+message,
// code+message+trace, message only, each optionally expanded across the
// whole parent chain ("Full").
type ErrorMode uint8

const (
	ModeDefault ErrorMode = iota
	ModeReturnCode
	ModeReturnCodeFull
	ModeReturnCodeError
	ModeReturnCodeErrorFull
	ModeReturnCodeErrorTrace
	ModeReturnCodeErrorTraceFull
	ModeReturnStringError
	ModeReturnStringErrorFull
)

// modeError is the process-wide rendering mode every ers.Error() consults.
var modeError = ModeDefault

func SetModeReturnError(mode ErrorMode) {
	modeError = mode
}

func GetModeReturnError() ErrorMode {
	return modeError
}

var modeNames = map[ErrorMode]string{
	ModeDefault:                  "default",
	ModeReturnCode:               "Code",
	ModeReturnCodeFull:           "CodeFull",
	ModeReturnCodeError:          "CodeError",
	ModeReturnCodeErrorFull:      "CodeErrorFull",
	ModeReturnCodeErrorTrace:     "CodeErrorTrace",
	ModeReturnCodeErrorTraceFull: "CodeErrorTraceFull",
	ModeReturnStringError:        "StringError",
	ModeReturnStringErrorFull:    "StringErrorFull",
}

func (m ErrorMode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return modeNames[ModeDefault]
}

// error renders e in mode m; unknown modes render as ModeDefault.
func (m ErrorMode) error(e *ers) string {
	switch m {
	case ModeReturnCode:
		return fmt.Sprintf("%v", e.Code())
	case ModeReturnCodeFull:
		return fmt.Sprintf("%v", e.CodeSlice())
	case ModeReturnCodeError:
		return e.CodeError("")
	case ModeReturnCodeErrorFull:
		return strings.Join(e.CodeErrorSlice(""), ", ")
	case ModeReturnCodeErrorTrace:
		return e.CodeErrorTrace("")
	case ModeReturnCodeErrorTraceFull:
		return strings.Join(e.CodeErrorTraceSlice(""), ", ")
	case ModeReturnStringErrorFull:
		return strings.Join(e.StringErrorSlice(), ", ")
	default:
		return e.StringError()
	}
}
