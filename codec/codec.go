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

// Package codec parses inbound RSI XML fragments and formats outbound
// response datagrams.
//
// Parsing is deliberately substring-based, not DOM-based: the per-datagram
// budget is a few hundred microseconds and the datagram shape is fixed by
// the robot controller, so scanning for literal delimiters is both faster
// and simpler than a conformant XML parser. Do not replace this with
// encoding/xml without measuring.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	liberr "github.com/sabouaram/rsihost/errors"
)

// CartesianPose is the robot's latest position/orientation.
type CartesianPose struct {
	X, Y, Z     float64
	A, B, C     float64
	TimestampUs int64
	IPOC        uint64
}

// JointPose is the robot's latest axis angles.
type JointPose struct {
	A1, A2, A3, A4, A5, A6 float64
	TimestampUs            int64
	IPOC                   uint64
}

// CartesianCorrection is the next deltas to transmit to the robot.
type CartesianCorrection struct {
	X, Y, Z float64
	A, B, C float64
}

// ExtractIPOC locates <IPOC>...</IPOC> and returns both the parsed value and
// the exact substring (so leading zeros can be echoed verbatim on the way
// back out). ok is false if either delimiter is missing or the
// body does not parse as an unsigned decimal integer.
func ExtractIPOC(datagram []byte) (value uint64, raw string, ok bool) {
	s := string(datagram)

	open := strings.Index(s, "<IPOC>")
	if open < 0 {
		return 0, "", false
	}
	start := open + len("<IPOC>")

	close := strings.Index(s[start:], "</IPOC>")
	if close < 0 {
		return 0, "", false
	}

	raw = s[start : start+close]
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return v, raw, true
}

// ExtractCartesian parses the <RIst X="..." .../> fragment. Missing
// attributes default to 0.0 — this is not an error. present
// is false only when the <RIst tag itself is absent from the datagram,
// which the caller uses to leave the store's pose record untouched this
// cycle rather than overwrite it with zeros.
func ExtractCartesian(datagram []byte) (pose CartesianPose, present bool) {
	s := string(datagram)
	tag := strings.Index(s, "<RIst")
	if tag < 0 {
		return CartesianPose{}, false
	}
	frag := s[tag:]
	return CartesianPose{
		X: attrFloat(frag, "X"),
		Y: attrFloat(frag, "Y"),
		Z: attrFloat(frag, "Z"),
		A: attrFloat(frag, "A"),
		B: attrFloat(frag, "B"),
		C: attrFloat(frag, "C"),
	}, true
}

// ExtractJoint parses the <AIPos A1="..." .../> fragment. Missing
// attributes default to 0.0. present mirrors
// ExtractCartesian's semantics for the <AIPos tag.
func ExtractJoint(datagram []byte) (joint JointPose, present bool) {
	s := string(datagram)
	tag := strings.Index(s, "<AIPos")
	if tag < 0 {
		return JointPose{}, false
	}
	frag := s[tag:]
	return JointPose{
		A1: attrFloat(frag, "A1"),
		A2: attrFloat(frag, "A2"),
		A3: attrFloat(frag, "A3"),
		A4: attrFloat(frag, "A4"),
		A5: attrFloat(frag, "A5"),
		A6: attrFloat(frag, "A6"),
	}, true
}

// attrFloat locates NAME=" within frag and decodes the float starting right
// after the opening quote, stopping at the closing quote. It returns 0.0 if
// the attribute is absent or does not parse.
func attrFloat(frag, name string) float64 {
	needle := name + `="`
	idx := strings.Index(frag, needle)
	if idx < 0 {
		return 0
	}
	start := idx + len(needle)
	rest := frag[start:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return 0
	}
	v, err := strconv.ParseFloat(rest[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

const responseTemplate = "<Sen Type=\"ImFree\">\n<EStr>RSI Monitor</EStr>\n<RKorr X=\"%.4f\" Y=\"%.4f\" Z=\"%.4f\" A=\"%.4f\" B=\"%.4f\" C=\"%.4f\" />\n<IPOC>%s</IPOC>\n</Sen>"

// FormatResponse renders the byte-exact outbound response datagram,
// echoing ipocRaw verbatim (preserving leading zeros). dst must be large
// enough to hold the formatted bytes; FormatResponse returns
// errors.Unknown if it is not, and the caller drops the packet without
// transmitting.
func FormatResponse(dst []byte, c CartesianCorrection, ipocRaw string) (int, error) {
	s := fmt.Sprintf(responseTemplate, c.X, c.Y, c.Z, c.A, c.B, c.C, ipocRaw)
	if len(s) > len(dst) {
		return 0, liberr.New(liberr.Unknown, "response %d bytes exceeds buffer %d bytes", len(s), len(dst))
	}
	return copy(dst, s), nil
}
