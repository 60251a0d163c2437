/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

// Package logger provides the ambient leveled logger used by the RSI host
// endpoint outside the per-packet hot path: bind/socket errors, late-response
// warnings, and watchdog transitions. It is never called from
// inside the engine's critical section.
package logger

// Logger is the minimal leveled-logging contract the engine and lifecycle
// controller depend on. Call sites never log from inside the State Store's
// critical section — only around it, matching the rule that the lock is
// never held
// across anything but sendto" rule.
type Logger interface {
	SetLevel(l Level)
	GetLevel() Level

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger annotated with the given key/value pairs.
	With(keyvals ...any) Logger
}

// Nil returns a Logger that silently discards everything; its level is
// always Off.
func Nil() Logger {
	return &discard{}
}

type discard struct{}

func (d *discard) SetLevel(Level)                  {}
func (d *discard) GetLevel() Level                 { return Off }
func (d *discard) Debugf(string, ...any)           {}
func (d *discard) Infof(string, ...any)            {}
func (d *discard) Warnf(string, ...any)            {}
func (d *discard) Errorf(string, ...any)           {}
func (d *discard) With(...any) Logger              { return d }
