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

package rsihost

import (
	"context"
	"fmt"
	"sync"

	"github.com/sabouaram/rsihost/codec"
	"github.com/sabouaram/rsihost/confload"
	"github.com/sabouaram/rsihost/engine"
	liberr "github.com/sabouaram/rsihost/errors"
	"github.com/sabouaram/rsihost/logger"
	libptc "github.com/sabouaram/rsihost/network/protocol"
	"github.com/sabouaram/rsihost/metrics"
	libcfg "github.com/sabouaram/rsihost/socket/config"
	"github.com/sabouaram/rsihost/store"
	"github.com/sabouaram/rsihost/transport"

	"github.com/prometheus/client_golang/prometheus"
)

// Configuration is the immutable startup option set of the wire protocol:
// bind address/port, liveness timeout, and verbosity.
type Configuration = confload.Configuration

// DataCallback is invoked once per cycle in which both the Cartesian and
// joint fragments parsed successfully. userData is the opaque handle
// registered with SetCallbacks, carried through unmodified — the
// function-pointer-plus-handle shape a C ABI binding would need. Go callers
// who prefer a closure can simply ignore userData and capture state
// instead.
type DataCallback func(cart codec.CartesianPose, joint codec.JointPose, userData any)

// ConnectionCallback is invoked only on is_connected transitions.
type ConnectionCallback func(connected bool, userData any)

// host is the engine instance the package-level free functions delegate
// to. Exactly one lives per process, per the design notes on process-wide
// scheduling tweaks.
type host struct {
	mu    sync.Mutex
	state State

	cfg Configuration
	st  *store.Store
	log logger.Logger

	sock *transport.Socket
	eng  *engine.Engine

	onData       DataCallback
	onConnection ConnectionCallback
	userData     any

	metricsRegistry *prometheus.Registry
	metricsExporter *metrics.Exporter
	metricsServer   *metrics.Server
	metricsCancel   context.CancelFunc
}

var (
	cellOnce sync.Once
	cell     *host
)

func instance() *host {
	cellOnce.Do(func() {
		cell = &host{
			state: Uninitialized,
			log:   logger.New("rsihost", logger.Warn),
		}
	})
	return cell
}

// Init configures and arms the engine. cfg == nil means defaults (bind
// 0.0.0.0:59152, 1000ms timeout, non-verbose). Valid only from
// Uninitialized.
func Init(cfg *Configuration) error {
	return instance().init(cfg)
}

func (h *host) init(cfg *Configuration) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != Uninitialized {
		return liberr.New(liberr.AlreadyRunning, "Init called from state %s", h.state)
	}

	resolved := confload.DefaultConfiguration()
	if cfg != nil {
		resolved = *cfg
	}

	h.cfg = resolved
	h.st = store.New()
	h.log.SetLevel(logger.FromVerbose(resolved.Verbose))
	h.state = Initialized

	return nil
}

// SetCallbacks registers the data and connection callbacks plus an
// opaque handle. Either callback may be nil. Valid only from Initialized
// (not Running).
func SetCallbacks(onData DataCallback, onConnection ConnectionCallback, userData any) error {
	return instance().setCallbacks(onData, onConnection, userData)
}

func (h *host) setCallbacks(onData DataCallback, onConnection ConnectionCallback, userData any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Uninitialized {
		return liberr.New(liberr.InitFailed, "SetCallbacks called before Init")
	}
	if h.state == Running {
		return liberr.New(liberr.AlreadyRunning, "SetCallbacks called while Running")
	}

	h.onData = onData
	h.onConnection = onConnection
	h.userData = userData

	return nil
}

// Start binds the socket and spawns the engine thread. Valid only from
// Initialized.
func Start() error {
	return instance().start()
}

func (h *host) start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Uninitialized {
		return liberr.New(liberr.InitFailed, "Start called before Init")
	}
	if h.state == Running {
		return liberr.New(liberr.AlreadyRunning, "Start called while already Running")
	}

	addr := fmt.Sprintf("%s:%d", h.cfg.BindAddress, h.cfg.BindPort)
	sock, err := transport.Open(libcfg.Server{
		Network:      libptc.NetworkUDP4,
		Address:      addr,
		ReuseAddress: true,
	}, h.log, h.cfg.Verbose)
	if err != nil {
		return liberr.New(liberr.SocketFailed, "Start: %v", err)
	}

	eng := engine.New(sock, h.st, h.log, engine.Config{
		LivenessTimeoutMs: h.cfg.LivenessTimeoutMs,
		Verbose:           h.cfg.Verbose,
		OnData:            h.wrapDataCallback(),
		OnConnection:       h.wrapConnectionCallback(),
	})
	// eng.Start spawns a goroutine; Go goroutine creation does not fail,
	// so ThreadFailed is reserved for a future runtime that needs real OS
	// thread allocation rather than ever being returned here.
	eng.Start()

	h.sock = sock
	h.eng = eng
	h.state = Running

	return nil
}

func (h *host) wrapDataCallback() engine.DataCallback {
	return func(cart codec.CartesianPose, joint codec.JointPose) {
		if h.onData != nil {
			h.onData(cart, joint, h.userData)
		}
	}
}

func (h *host) wrapConnectionCallback() engine.ConnectionCallback {
	return func(connected bool) {
		if h.onConnection != nil {
			h.onConnection(connected, h.userData)
		}
	}
}

// Stop signals the engine thread to exit, joins it (bounded to one
// second), and closes the socket. Valid only from Running.
func Stop() error {
	return instance().stop()
}

func (h *host) stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopLocked()
}

func (h *host) stopLocked() error {
	if h.state != Running {
		return liberr.New(liberr.NotRunning, "Stop called from state %s", h.state)
	}

	h.eng.Stop()
	_ = h.sock.Close()
	h.eng = nil
	h.sock = nil
	h.state = Initialized

	return nil
}

// Cleanup tears down the engine, calling Stop first if still Running, and
// returns to Uninitialized.
func Cleanup() error {
	return instance().cleanup()
}

func (h *host) cleanup() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Running {
		if err := h.stopLocked(); err != nil {
			return err
		}
	}

	if h.metricsServer != nil {
		h.metricsCancel()
		h.metricsServer = nil
		h.metricsExporter = nil
		h.metricsRegistry = nil
		h.metricsCancel = nil
	}

	h.st = nil
	h.onData = nil
	h.onConnection = nil
	h.userData = nil
	h.state = Uninitialized

	return nil
}
