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

// Package fields holds the structured key/value context attached to a log
// line: correlation ids for objects, signals and timers, carried through to
// the logrus backend.
package fields

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Fields interface {
	// Add inserts or updates a key-value pair and returns the receiver for chaining.
	Add(key string, val interface{}) Fields

	// Logrus converts the fields to logrus.Fields for WithFields.
	Logrus() logrus.Fields

	// Clone returns an independent copy of the fields.
	Clone() Fields
}

// New returns an empty Fields bound to the given context.
func New(ctx context.Context) Fields {
	return newModel(ctx)
}
