/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package protocol_test

import (
	"testing"

	. "github.com/sabouaram/rsihost/network/protocol"
)

func TestInt_KnownAndUnknown(t *testing.T) {
	if NetworkUDP4.Int() != int(NetworkUDP4) {
		t.Fatalf("NetworkUDP4.Int() mismatch")
	}
	if NetworkEmpty.Int() != 0 {
		t.Fatalf("NetworkEmpty.Int() should be 0")
	}
	if NetworkProtocol(99).Int() != 0 {
		t.Fatalf("out-of-range protocol should be 0")
	}
}

func TestString_RoundTripsThroughParse(t *testing.T) {
	for _, p := range []NetworkProtocol{
		NetworkUnix, NetworkTCP, NetworkTCP4, NetworkTCP6,
		NetworkUDP, NetworkUDP4, NetworkUDP6,
		NetworkIP, NetworkIP4, NetworkIP6, NetworkUnixGram,
	} {
		s := p.String()
		if s == "" {
			t.Fatalf("protocol %d stringified to empty", p)
		}
		if got := Parse(s); got != p {
			t.Fatalf("Parse(%q) = %v, want %v", s, got, p)
		}
	}
}

func TestIsUDP(t *testing.T) {
	for _, p := range []NetworkProtocol{NetworkUDP, NetworkUDP4, NetworkUDP6} {
		if !p.IsUDP() {
			t.Fatalf("%v should be IsUDP", p)
		}
	}
	if NetworkTCP4.IsUDP() {
		t.Fatalf("tcp4 should not be IsUDP")
	}
}

func TestParse_Unknown(t *testing.T) {
	if Parse("sctp") != NetworkEmpty {
		t.Fatalf("unknown protocol should parse to NetworkEmpty")
	}
}
