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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sabouaram/rsihost/codec"
	"github.com/sabouaram/rsihost/confload"
	liberr "github.com/sabouaram/rsihost/errors"
	"github.com/sabouaram/rsihost/logger"
	"github.com/sabouaram/rsihost/metrics"
	"github.com/sabouaram/rsihost/store"
)

// GetCartesianPosition returns the most recently latched Cartesian pose.
// Valid only while Running.
func GetCartesianPosition() (codec.CartesianPose, error) {
	return instance().getCartesianPosition()
}

func (h *host) getCartesianPosition() (codec.CartesianPose, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Running {
		return codec.CartesianPose{}, liberr.New(liberr.NotRunning, "GetCartesianPosition called from state %s", h.state)
	}
	return h.st.CartesianPose(), nil
}

// GetJointPosition returns the most recently latched joint angles. Valid
// only while Running.
func GetJointPosition() (codec.JointPose, error) {
	return instance().getJointPosition()
}

func (h *host) getJointPosition() (codec.JointPose, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Running {
		return codec.JointPose{}, liberr.New(liberr.NotRunning, "GetJointPosition called from state %s", h.state)
	}
	return h.st.JointPose(), nil
}

// SetCartesianCorrection stages the Cartesian correction the engine will
// echo back on the next cycle's response. Valid only while Running.
func SetCartesianCorrection(c codec.CartesianCorrection) error {
	return instance().setCartesianCorrection(c)
}

func (h *host) setCartesianCorrection(c codec.CartesianCorrection) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Running {
		return liberr.New(liberr.NotRunning, "SetCartesianCorrection called from state %s", h.state)
	}
	h.st.SetCorrection(c)
	return nil
}

// GetStatistics returns a snapshot of the running counters. Valid from
// Initialized or Running.
func GetStatistics() (store.Statistics, error) {
	return instance().getStatistics()
}

func (h *host) getStatistics() (store.Statistics, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == Uninitialized {
		return store.Statistics{}, liberr.New(liberr.InitFailed, "GetStatistics called before Init")
	}
	return h.st.Snapshot(), nil
}

// GetErrorString returns the diagnostic text for a Kind, so a caller
// holding only the numeric taxonomy value can render a message.
func GetErrorString(k liberr.Kind) string {
	return liberr.GetErrorString(k)
}

// SetLogLevel adjusts the ambient logger's verbosity at runtime,
// independent of the Verbose field captured at Init.
func SetLogLevel(level logger.Level) {
	instance().setLogLevel(level)
}

func (h *host) setLogLevel(level logger.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.SetLevel(level)
}

// LoadConfiguration reads a Configuration from path via confload, without
// touching the running instance — callers decide whether and when to feed
// the result to Init.
func LoadConfiguration(path string) (Configuration, error) {
	cfg, _, err := confload.Load(path)
	return cfg, err
}

// StartMetricsServer exposes the current Store's counters on addr at
// /metrics, sampled on a one-second tick that never touches the hot-path
// lock directly. Valid from Initialized or Running — it only needs the
// Store, which Init already constructed.
func StartMetricsServer(addr string) error {
	return instance().startMetricsServer(addr)
}

func (h *host) startMetricsServer(addr string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Uninitialized {
		return liberr.New(liberr.InitFailed, "StartMetricsServer called before Init")
	}
	if h.metricsServer != nil {
		return liberr.New(liberr.AlreadyRunning, "StartMetricsServer already active")
	}

	reg := prometheus.NewRegistry()
	exp, err := metrics.NewExporter(reg, h.st, time.Second)
	if err != nil {
		return liberr.New(liberr.Unknown, "StartMetricsServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go exp.Run(ctx)

	h.metricsRegistry = reg
	h.metricsExporter = exp
	h.metricsCancel = cancel
	h.metricsServer = metrics.NewServer(addr, reg)
	h.metricsServer.Start()

	return nil
}

// StopMetricsServer shuts down a previously started metrics endpoint. It
// is a no-op if none is running.
func StopMetricsServer() error {
	return instance().stopMetricsServer()
}

func (h *host) stopMetricsServer() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.metricsServer == nil {
		return nil
	}

	h.metricsCancel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := h.metricsServer.Stop(ctx)

	h.metricsServer = nil
	h.metricsExporter = nil
	h.metricsRegistry = nil
	h.metricsCancel = nil

	return err
}
