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

// Package clock is the microsecond timestamp source shared by the State
// Store (host_timestamp_us, last_packet_timestamp_us) and the I/O Engine's
// latency accounting.
package clock

import "time"

// NowMicro returns a wall-clock microsecond timestamp suitable for storing
// as a pose/joint host_timestamp_us or as last_packet_timestamp_us.
func NowMicro() int64 {
	return time.Now().UnixMicro()
}

// Start captures a monotonic instant for elapsed-time measurement. Per-loop
// processing time (§4.4 step 2f) is measured with Start/Elapsed rather than
// two NowMicro() samples, because time.Time retains the runtime's monotonic
// clock reading and so is immune to wall-clock adjustments mid-measurement.
func Start() time.Time {
	return time.Now()
}

// ElapsedMicro returns the elapsed microseconds since a prior Start().
func ElapsedMicro(start time.Time) int64 {
	return time.Since(start).Microseconds()
}
