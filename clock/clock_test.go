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

package clock_test

import (
	"testing"
	"time"

	"github.com/sabouaram/rsihost/clock"
)

func TestNowMicro_Monotonic(t *testing.T) {
	a := clock.NowMicro()
	time.Sleep(time.Millisecond)
	b := clock.NowMicro()
	if b <= a {
		t.Fatalf("expected b > a, got a=%d b=%d", a, b)
	}
}

func TestElapsedMicro(t *testing.T) {
	start := clock.Start()
	time.Sleep(2 * time.Millisecond)
	e := clock.ElapsedMicro(start)
	if e < 1000 {
		t.Fatalf("expected at least 1ms elapsed, got %dus", e)
	}
}
