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

// Package config describes how the transport package should open and tune a
// socket, decoupled from the act of opening one. Validate only checks shape
// (resolvable address, supported network); it never touches the network.
package config

import (
	"fmt"
	"net"

	libptc "github.com/sabouaram/rsihost/network/protocol"
)

// DefaultBufferSize is the 1 MiB send/receive buffer size used by default.
const DefaultBufferSize = 1 << 20

// Server describes a listening UDP endpoint for the RSI host.
type Server struct {
	// Network is the transport family; this engine only ever binds
	// NetworkUDP4, but the field accepts the full protocol.NetworkProtocol
	// range so Validate can give a precise error for anything else.
	Network libptc.NetworkProtocol
	// Address is "host:port" (or ":port" for the wildcard bind).
	Address string
	// BufferRead/BufferWrite size the socket's SO_RCVBUF/SO_SNDBUF. Zero
	// means DefaultBufferSize.
	BufferRead  int
	BufferWrite int
	// ReuseAddress enables SO_REUSEADDR.
	ReuseAddress bool
}

// Validate checks that the configured network/address pair is resolvable
// and that the network is one socket/transport actually supports.
func (s Server) Validate() error {
	if !s.Network.IsUDP() {
		return fmt.Errorf("socket/config: network %q is not a supported UDP family", s.Network.String())
	}
	if _, err := net.ResolveUDPAddr(s.Network.String(), s.Address); err != nil {
		return fmt.Errorf("socket/config: invalid address %q: %w", s.Address, err)
	}
	return nil
}

// RecvBufferSize returns BufferRead or DefaultBufferSize if unset.
func (s Server) RecvBufferSize() int {
	if s.BufferRead <= 0 {
		return DefaultBufferSize
	}
	return s.BufferRead
}

// SendBufferSize returns BufferWrite or DefaultBufferSize if unset.
func (s Server) SendBufferSize() int {
	if s.BufferWrite <= 0 {
		return DefaultBufferSize
	}
	return s.BufferWrite
}
