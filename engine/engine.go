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

// Package engine runs the real-time receive/parse/respond/watchdog loop
// on a dedicated, priority-elevated OS thread. Everything inside the loop
// is tolerated-on-failure: a parse error drops one datagram, a transmit
// error is swallowed, a watchdog fire is a soft event. The only fatal
// failures happen before the loop ever starts.
package engine

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sabouaram/rsihost/clock"
	"github.com/sabouaram/rsihost/codec"
	"github.com/sabouaram/rsihost/logger"
	"github.com/sabouaram/rsihost/platform"
	"github.com/sabouaram/rsihost/store"
	"github.com/sabouaram/rsihost/transport"
)

// lateResponseThresholdMs is the robot's 4ms cycle budget.
const lateResponseThresholdMs = 4.0

// DataCallback is invoked once per cycle in which both the Cartesian and
// joint fragments parsed successfully. It runs on the engine thread and
// must not block, allocate heavily, or call back into Start/Stop/Cleanup.
type DataCallback func(cart codec.CartesianPose, joint codec.JointPose)

// ConnectionCallback is invoked only on is_connected transitions.
type ConnectionCallback func(connected bool)

// Config carries the per-Start parameters the loop needs beyond the
// socket and store it is handed explicitly.
type Config struct {
	LivenessTimeoutMs int64
	Verbose           bool
	OnData            DataCallback
	OnConnection      ConnectionCallback
}

// Engine owns the running loop's lifecycle. One Engine is started per
// Start() call; it is not reused across Stop/Start cycles — the caller
// constructs a fresh Engine each time, matching the root package's
// "socket created, engine spawned" sequencing.
type Engine struct {
	sock  *transport.Socket
	store *store.Store
	log   logger.Logger
	cfg   Config

	exit    atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// New constructs an Engine bound to sock and st. It does not start the
// loop; call Start for that.
func New(sock *transport.Socket, st *store.Store, log logger.Logger, cfg Config) *Engine {
	return &Engine{
		sock:  sock,
		store: st,
		log:   log,
		cfg:   cfg,
		done:  make(chan struct{}),
	}
}

// Start spawns the engine's dedicated goroutine and returns immediately.
// The goroutine locks itself to its OS thread and attempts to raise its
// scheduling priority; a failure to do so is logged, never fatal.
func (e *Engine) Start() {
	e.running.Store(true)
	go e.run()
}

// Stop signals the loop to exit and waits up to one second for it to
// acknowledge. It returns regardless of whether the goroutine confirmed
// within that window — a bounded wait followed by a successful return
// either way.
func (e *Engine) Stop() {
	e.exit.Store(true)
	select {
	case <-e.done:
	case <-time.After(time.Second):
	}
}

// IsRunning reports whether the loop goroutine is currently active.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

func (e *Engine) run() {
	defer func() {
		e.running.Store(false)
		close(e.done)
	}()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := platform.RaiseThreadPriority(); err != nil {
		e.log.Warnf("engine: running at default thread priority: %v", err)
	}

	buf := make([]byte, transport.MaxDatagramSize)
	respBuf := make([]byte, transport.MaxDatagramSize)

	for {
		e.tick(buf, respBuf)
		e.watchdog()

		if e.exit.Load() {
			return
		}

		runtime.Gosched()
	}
}

func (e *Engine) tick(buf, respBuf []byte) {
	iterStart := clock.Start()

	n, peer, pending, err := e.sock.ReceiveNonBlocking(buf)
	if err != nil || !pending {
		return
	}

	datagram := buf[:n]

	ipoc, ipocRaw, ok := codec.ExtractIPOC(datagram)
	if !ok {
		return
	}

	e.store.IncrementReceived()

	if !e.store.IsConnected() {
		e.store.MarkConnected()
		if e.cfg.OnConnection != nil {
			e.cfg.OnConnection(true)
		}
	}

	tsUs := clock.NowMicro()

	cart, cartOK := codec.ExtractCartesian(datagram)
	joint, jointOK := codec.ExtractJoint(datagram)

	var cartPtr *codec.CartesianPose
	var jointPtr *codec.JointPose
	if cartOK {
		cartPtr = &cart
	}
	if jointOK {
		jointPtr = &joint
	}
	e.store.ApplyInbound(cartPtr, jointPtr, ipoc, tsUs, peer)

	correction := e.store.PendingResponse()
	respLen, err := codec.FormatResponse(respBuf, correction, ipocRaw)
	if err != nil {
		e.log.Warnf("engine: dropping response, %v", err)
		return
	}

	if cartOK && jointOK && e.cfg.OnData != nil {
		e.cfg.OnData(cart, joint)
	}

	if err := e.sock.SendTo(respBuf[:respLen], peer); err != nil && e.cfg.Verbose {
		e.log.Warnf("engine: send to %s failed, %v", peer, err)
	}
	e.store.IncrementSent()

	elapsedMs := float64(clock.ElapsedMicro(iterStart)) / 1000.0
	e.store.RecordResponseTime(elapsedMs, lateResponseThresholdMs)
	if elapsedMs > lateResponseThresholdMs && e.cfg.Verbose {
		e.log.Warnf("engine: response took %.3fms, exceeds %.1fms cycle budget", elapsedMs, lateResponseThresholdMs)
	}
}

func (e *Engine) watchdog() {
	if e.cfg.LivenessTimeoutMs <= 0 || !e.store.IsConnected() {
		return
	}
	elapsedUs := clock.NowMicro() - e.store.LastPacketTimestampUs()
	if elapsedUs > e.cfg.LivenessTimeoutMs*1000 {
		e.store.MarkDisconnected()
		if e.cfg.Verbose {
			e.log.Warnf("engine: connection lost, no packet for %dms", elapsedUs/1000)
		}
		if e.cfg.OnConnection != nil {
			e.cfg.OnConnection(false)
		}
	}
}
