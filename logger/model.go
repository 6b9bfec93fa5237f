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

package logger

import (
	"io"
	"os"
	"sync"

	loglvl "github.com/nabbar/runtimecore/logger/level"

	"github.com/sirupsen/logrus"
	jww "github.com/spf13/jwalterweatherman"
)

type model struct {
	mu  sync.Mutex
	log *logrus.Logger
	fld logrus.Fields
}

func newModel() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(loglvl.InfoLevel.Logrus())

	return &model{
		log: l,
		fld: make(logrus.Fields),
	}
}

func (m *model) Write(p []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.Out.Write(p)
}

func (m *model) SetLevel(lvl loglvl.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.SetLevel(lvl.Logrus())
}

func (m *model) GetLevel() loglvl.Level {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.log.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return loglvl.DebugLevel
	case logrus.InfoLevel:
		return loglvl.InfoLevel
	case logrus.WarnLevel:
		return loglvl.WarnLevel
	case logrus.ErrorLevel:
		return loglvl.ErrorLevel
	case logrus.FatalLevel:
		return loglvl.FatalLevel
	case logrus.PanicLevel:
		return loglvl.PanicLevel
	default:
		return loglvl.NilLevel
	}
}

func (m *model) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.SetOutput(w)
}

func (m *model) Clone() Logger {
	m.mu.Lock()
	defer m.mu.Unlock()

	fld := make(logrus.Fields, len(m.fld))
	for k, v := range m.fld {
		fld[k] = v
	}

	return &model{
		log: m.log,
		fld: fld,
	}
}

func (m *model) WithField(key string, val interface{}) Logger {
	m.mu.Lock()
	defer m.mu.Unlock()

	fld := make(logrus.Fields, len(m.fld)+1)
	for k, v := range m.fld {
		fld[k] = v
	}
	fld[key] = val

	return &model{
		log: m.log,
		fld: fld,
	}
}

func (m *model) entry() *logrus.Entry {
	return m.log.WithFields(m.fld)
}

func (m *model) Debug(message string, args ...interface{})   { m.entry().Debugf(message, args...) }
func (m *model) Info(message string, args ...interface{})    { m.entry().Infof(message, args...) }
func (m *model) Warning(message string, args ...interface{}) { m.entry().Warnf(message, args...) }
func (m *model) Error(message string, args ...interface{})   { m.entry().Errorf(message, args...) }
func (m *model) Fatal(message string, args ...interface{})   { m.entry().Fatalf(message, args...) }

// JWW returns a jwalterweatherman Notepad whose output and threshold mirror
// this Logger, for libraries (viper, cobra) that log through jww rather
// than logrus.
func (m *model) JWW() *jww.Notepad {
	m.mu.Lock()
	defer m.mu.Unlock()

	var threshold jww.Threshold

	switch m.log.GetLevel() {
	case logrus.TraceLevel, logrus.DebugLevel:
		threshold = jww.LevelTrace
	case logrus.InfoLevel:
		threshold = jww.LevelInfo
	case logrus.WarnLevel:
		threshold = jww.LevelWarn
	case logrus.ErrorLevel:
		threshold = jww.LevelError
	case logrus.FatalLevel:
		threshold = jww.LevelFatal
	default:
		threshold = jww.LevelCritical
	}

	return jww.NewNotepad(threshold, threshold, m.log.Out, io.Discard, "", 0)
}
