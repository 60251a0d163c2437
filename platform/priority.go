/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package platform elevates the calling OS thread to the host's highest
// real-time-ish scheduling class: SCHED_FIFO at maximum priority on POSIX,
// time-critical on Windows. The engine calls RaiseThreadPriority once,
// from the goroutine it has already pinned with runtime.LockOSThread,
// before entering its hot loop.
//
// On platforms that refuse real-time priority without capability (or that
// have no such concept at all), RaiseThreadPriority returns an error but
// the engine keeps running at default priority: this degrades
// late-response counters, not correctness.
package platform

// RaiseThreadPriority elevates the current OS thread. The caller must have
// already called runtime.LockOSThread(); this package never does so
// itself, since the lock must outlive this single call.
func RaiseThreadPriority() error {
	return raiseThreadPriority()
}
