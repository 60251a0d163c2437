/*
MIT License

Copyright (c) 2023 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package duration_test

import (
	"testing"
	"time"

	libdur "github.com/sabouaram/rsihost/duration"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"5h30m", 5*time.Hour + 30*time.Minute},
		{"-5h", -5 * time.Hour},
		{"0", 0},
		{"1.5h", 90 * time.Minute},
		{"100ns", 100 * time.Nanosecond},
		{"100ms", 100 * time.Millisecond},
		{"10s", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{"2h", 2 * time.Hour},
		{"\"5h30m\"", 5*time.Hour + 30*time.Minute},
		{"'5h30m'", 5*time.Hour + 30*time.Minute},
		{"+5h", 5 * time.Hour},
	}

	for _, tt := range tests {
		d, err := libdur.Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if d.Time() != tt.expected {
			t.Fatalf("Parse(%q): got %v, want %v", tt.input, d.Time(), tt.expected)
		}
	}
}

func TestParse_InvalidInput(t *testing.T) {
	for _, input := range []string{"invalid", "5x", "5", "", "-", "+"} {
		if _, err := libdur.Parse(input); err == nil {
			t.Fatalf("Parse(%q): expected error, got none", input)
		}
	}
}
