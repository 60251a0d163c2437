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

// Package rsihost is a host-side endpoint for a hard real-time industrial
// robot sensor interface: it receives the robot's Cartesian pose and
// joint angles over UDP every control cycle, latches them, and replies
// with a Cartesian correction before the next cycle begins.
//
// The public surface is a set of free functions operating on a single
// process-wide instance (Init/SetCallbacks/Start/Stop/Cleanup plus the
// accessors below), mirroring the single file-scope engine instance of
// the protocol's originating implementation: more than one live engine per
// process is not a supported shape. Init makes no OS-level changes; the
// engine raises the priority of its own OS thread when Start spawns it,
// and no timer-resolution change is made.
package rsihost

import "fmt"

// State is the lifecycle position of the singleton engine.
type State int

const (
	Uninitialized State = iota
	Initialized
	Running
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
