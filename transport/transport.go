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

// Package transport opens the single UDP socket the engine reads and
// writes on. Bind failure is fatal to Start; everything past
// that point is non-blocking and best-effort.
package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/sabouaram/rsihost/logger"
	libptc "github.com/sabouaram/rsihost/network/protocol"
	libcfg "github.com/sabouaram/rsihost/socket/config"
)

// MaxDatagramSize is the largest inbound datagram the engine accepts: the
// size of the engine's receive and response buffers. It is independent of
// the 1 MiB kernel socket buffer size.
const MaxDatagramSize = 4095

// Socket is the bound, tuned UDP endpoint the engine drives.
type Socket struct {
	conn *net.UDPConn
}

// Open binds cfg.Address and applies SO_REUSEADDR and the send/receive
// buffer sizes. Only NetworkUDP/NetworkUDP4/NetworkUDP6 are accepted;
// anything else is rejected by cfg.Validate before a socket is ever
// attempted. log may be nil, in which case it defaults to a discarding
// logger; setsockopt failures are logged through it in verbose mode and
// are otherwise non-fatal.
func Open(cfg libcfg.Server, log logger.Logger, verbose bool) (*Socket, error) {
	if log == nil {
		log = logger.Nil()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	network := cfg.Network.String()
	if cfg.Network == libptc.NetworkEmpty {
		network = libptc.NetworkUDP4.String()
	}

	lc := net.ListenConfig{}
	if cfg.ReuseAddress {
		lc.Control = controlReuseAddr
	}

	pc, err := lc.ListenPacket(context.Background(), network, cfg.Address)
	if err != nil {
		return nil, err
	}
	conn := pc.(*net.UDPConn)

	if err := conn.SetReadBuffer(cfg.RecvBufferSize()); err != nil && verbose {
		log.Warnf("transport: SetReadBuffer(%d) failed, %v", cfg.RecvBufferSize(), err)
	}
	if err := conn.SetWriteBuffer(cfg.SendBufferSize()); err != nil && verbose {
		log.Warnf("transport: SetWriteBuffer(%d) failed, %v", cfg.SendBufferSize(), err)
	}

	return &Socket{conn: conn}, nil
}

// ReceiveNonBlocking returns immediately if nothing is pending instead of
// blocking the engine's busy-poll loop: it arms a deadline of "now" before
// every read, which is the portable equivalent of a non-blocking recv on
// a socket the net package already manages through the runtime netpoller.
func (s *Socket) ReceiveNonBlocking(buf []byte) (n int, peer *net.UDPAddr, pending bool, err error) {
	if err := s.conn.SetReadDeadline(time.Now()); err != nil {
		return 0, nil, false, err
	}
	n, peer, err = s.conn.ReadFromUDP(buf)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, false, nil
		}
		return 0, nil, false, err
	}
	return n, peer, true, nil
}

// SendTo transmits a response to peer. Errors are intentionally not
// classified further: every transmit failure is treated as
// tolerated and silently swallowed by the caller.
func (s *Socket) SendTo(buf []byte, peer *net.UDPAddr) error {
	_, err := s.conn.WriteToUDP(buf, peer)
	return err
}

// Close releases the socket. Safe to call once, after the engine thread
// has been joined.
func (s *Socket) Close() error {
	return s.conn.Close()
}

// LocalAddr returns the bound local address, useful when Address was
// ":0" or port 0 and the OS picked the real port.
func (s *Socket) LocalAddr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

func isTimeout(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	return false
}
