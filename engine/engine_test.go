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

package engine_test

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sabouaram/rsihost/codec"
	"github.com/sabouaram/rsihost/engine"
	"github.com/sabouaram/rsihost/logger"
	libptc "github.com/sabouaram/rsihost/network/protocol"
	libcfg "github.com/sabouaram/rsihost/socket/config"
	"github.com/sabouaram/rsihost/store"
	"github.com/sabouaram/rsihost/transport"
)

func newLoopbackPair(t *testing.T) (server *transport.Socket, client *net.UDPConn) {
	t.Helper()
	server, err := transport.Open(libcfg.Server{Network: libptc.NetworkUDP4, Address: "127.0.0.1:0", ReuseAddress: true}, logger.Nil(), false)
	if err != nil {
		t.Fatalf("Open server: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	client, err = net.DialUDP("udp4", nil, server.LocalAddr())
	if err != nil {
		t.Fatalf("DialUDP client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return server, client
}

func TestEngine_HappyPath(t *testing.T) {
	sock, client := newLoopbackPair(t)
	st := store.New()
	e := engine.New(sock, st, logger.Nil(), engine.Config{})
	e.Start()
	defer e.Stop()

	datagram := `<Rob Type="KUKA"><RIst X="100.0" Y="200.0" Z="300.0" A="10.0" B="20.0" C="30.0"/><AIPos A1="1" A2="2" A3="3" A4="4" A5="5" A6="6"/><IPOC>12345</IPOC></Rob>`
	if _, err := client.Write([]byte(datagram)); err != nil {
		t.Fatalf("client write: %v", err)
	}

	resp := readResponse(t, client)
	if !strings.Contains(resp, `X="0.0000" Y="0.0000" Z="0.0000" A="0.0000" B="0.0000" C="0.0000"`) {
		t.Fatalf("expected zero correction in response, got %q", resp)
	}
	if !strings.Contains(resp, "<IPOC>12345</IPOC>") {
		t.Fatalf("expected IPOC 12345 echoed, got %q", resp)
	}

	waitFor(t, func() bool {
		snap := st.Snapshot()
		return snap.PacketsReceived == 1 && snap.PacketsSent == 1 && snap.IsConnected
	})
}

func TestEngine_CorrectionApplied(t *testing.T) {
	sock, client := newLoopbackPair(t)
	st := store.New()
	st.SetCorrection(codec.CartesianCorrection{X: 1.5, Y: -0.25})
	e := engine.New(sock, st, logger.Nil(), engine.Config{})
	e.Start()
	defer e.Stop()

	datagram := `<Rob Type="KUKA"><RIst X="100.0" Y="200.0" Z="300.0" A="10.0" B="20.0" C="30.0"/><AIPos A1="1" A2="2" A3="3" A4="4" A5="5" A6="6"/><IPOC>12345</IPOC></Rob>`
	if _, err := client.Write([]byte(datagram)); err != nil {
		t.Fatalf("client write: %v", err)
	}

	resp := readResponse(t, client)
	if !strings.Contains(resp, `X="1.5000" Y="-0.2500" Z="0.0000" A="0.0000" B="0.0000" C="0.0000"`) {
		t.Fatalf("expected applied correction in response, got %q", resp)
	}
}

func TestEngine_MalformedIPOC_DropsDatagram(t *testing.T) {
	sock, client := newLoopbackPair(t)
	st := store.New()
	e := engine.New(sock, st, logger.Nil(), engine.Config{})
	e.Start()
	defer e.Stop()

	if _, err := client.Write([]byte(`<Rob><IPOC>12345</Rob>`)); err != nil {
		t.Fatalf("client write: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	snap := st.Snapshot()
	if snap.PacketsReceived != 0 {
		t.Fatalf("expected packets_received == 0 for malformed IPOC, got %d", snap.PacketsReceived)
	}
}

func TestEngine_IPOCLeadingZerosPreserved(t *testing.T) {
	sock, client := newLoopbackPair(t)
	st := store.New()
	e := engine.New(sock, st, logger.Nil(), engine.Config{})
	e.Start()
	defer e.Stop()

	datagram := `<Rob><RIst X="1.0"/><AIPos A1="1"/><IPOC>0007</IPOC></Rob>`
	if _, err := client.Write([]byte(datagram)); err != nil {
		t.Fatalf("client write: %v", err)
	}

	resp := readResponse(t, client)
	if !strings.Contains(resp, "<IPOC>0007</IPOC>") {
		t.Fatalf("expected leading zeros preserved, got %q", resp)
	}
}

func TestEngine_Watchdog(t *testing.T) {
	sock, client := newLoopbackPair(t)
	st := store.New()

	var mu sync.Mutex
	var transitions []bool
	e := engine.New(sock, st, logger.Nil(), engine.Config{
		LivenessTimeoutMs: 100,
		OnConnection: func(connected bool) {
			mu.Lock()
			transitions = append(transitions, connected)
			mu.Unlock()
		},
	})
	e.Start()
	defer e.Stop()

	datagram := `<Rob><RIst X="1.0"/><AIPos A1="1"/><IPOC>1</IPOC></Rob>`
	if _, err := client.Write([]byte(datagram)); err != nil {
		t.Fatalf("client write: %v", err)
	}
	_ = readResponse(t, client)

	waitFor(t, func() bool { return st.IsConnected() })

	time.Sleep(200 * time.Millisecond)

	waitFor(t, func() bool { return !st.IsConnected() })

	snap := st.Snapshot()
	if snap.ConnectionLostCount != 1 {
		t.Fatalf("expected connection_lost_count == 1, got %d", snap.ConnectionLostCount)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 2 || transitions[0] != true || transitions[1] != false {
		t.Fatalf("expected [true, false] transitions, got %v", transitions)
	}
}

func readResponse(t *testing.T, client *net.UDPConn) string {
	t.Helper()
	buf := make([]byte, transport.MaxDatagramSize)
	if err := client.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	return string(buf[:n])
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within timeout")
}
