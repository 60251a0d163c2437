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

//go:build linux

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// fifoMaxPriority picks the top of the SCHED_FIFO priority range rather
// than querying sched_get_priority_max, since POSIX fixes it at 99 on
// every Linux scheduler build this package targets.
const fifoMaxPriority = 99

func raiseThreadPriority() error {
	param := unix.SchedParam{Priority: fifoMaxPriority}
	if err := unix.SchedSetscheduler(0, unix.SCHED_FIFO, &param); err != nil {
		return fmt.Errorf("platform: SCHED_FIFO unavailable (needs CAP_SYS_NICE): %w", err)
	}
	return nil
}
