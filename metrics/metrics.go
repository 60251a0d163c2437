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

// Package metrics exposes the State Store's statistics snapshot as
// Prometheus gauges/counters, sampled on a ticker rather than touching the
// engine's hot-path lock directly: the exporter only ever calls
// store.Snapshot, the same accessor any application thread would use.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sabouaram/rsihost/store"
)

// Exporter samples a Store on an interval and republishes it as
// Prometheus metrics registered under registry.
type Exporter struct {
	store    *store.Store
	interval time.Duration

	packetsReceived     prometheus.Counter
	packetsSent         prometheus.Counter
	lateResponses       prometheus.Counter
	connectionLostTotal prometheus.Counter
	connected           prometheus.Gauge
	responseTimeMs      *prometheus.GaugeVec

	// prevReceived..prevConnLost track the last cumulative value sampled
	// from the Store so each tick can Add() the delta: prometheus.Counter
	// only supports monotonic increments, while Store.Snapshot reports
	// running totals.
	prevReceived uint64
	prevSent     uint64
	prevLate     uint64
	prevConnLost uint64

	cancel context.CancelFunc
}

// NewExporter registers the RSI host's counters/gauges on registry and
// returns an Exporter ready to Run. Registration happens eagerly so a
// caller who never calls Run still gets a valid /metrics surface showing
// all-zero values.
func NewExporter(registry prometheus.Registerer, st *store.Store, interval time.Duration) (*Exporter, error) {
	e := &Exporter{
		store:    st,
		interval: interval,
		packetsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsi_packets_received_total",
			Help: "Total inbound datagrams whose IPOC extraction succeeded.",
		}),
		packetsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsi_packets_sent_total",
			Help: "Total outbound response datagrams attempted.",
		}),
		lateResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsi_late_responses_total",
			Help: "Total engine iterations whose processing time exceeded the 4ms cycle budget.",
		}),
		connectionLostTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsi_connection_lost_total",
			Help: "Total watchdog-triggered disconnect events.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rsi_connected",
			Help: "1 if a robot datagram has arrived within the liveness timeout, else 0.",
		}),
		responseTimeMs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rsi_response_time_ms",
			Help: "Rolling response-time statistics in milliseconds.",
		}, []string{"stat"}),
	}

	for _, c := range []prometheus.Collector{
		e.packetsReceived, e.packetsSent, e.lateResponses,
		e.connectionLostTotal, e.connected, e.responseTimeMs,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Run samples the Store every interval until ctx is cancelled or Stop is
// called. It is meant to run in its own goroutine, separate from the
// engine thread.
func (e *Exporter) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sample()
		}
	}
}

// Stop cancels a running Run loop. Safe to call even if Run was never
// started.
func (e *Exporter) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *Exporter) sample() {
	snap := e.store.Snapshot()

	if snap.PacketsReceived > e.prevReceived {
		e.packetsReceived.Add(float64(snap.PacketsReceived - e.prevReceived))
		e.prevReceived = snap.PacketsReceived
	}
	if snap.PacketsSent > e.prevSent {
		e.packetsSent.Add(float64(snap.PacketsSent - e.prevSent))
		e.prevSent = snap.PacketsSent
	}
	if snap.LateResponses > e.prevLate {
		e.lateResponses.Add(float64(snap.LateResponses - e.prevLate))
		e.prevLate = snap.LateResponses
	}
	if snap.ConnectionLostCount > e.prevConnLost {
		e.connectionLostTotal.Add(float64(snap.ConnectionLostCount - e.prevConnLost))
		e.prevConnLost = snap.ConnectionLostCount
	}

	if snap.IsConnected {
		e.connected.Set(1)
	} else {
		e.connected.Set(0)
	}

	e.responseTimeMs.WithLabelValues("avg").Set(snap.AvgResponseTimeMs)
	e.responseTimeMs.WithLabelValues("min").Set(snap.MinResponseTimeMs)
	e.responseTimeMs.WithLabelValues("max").Set(snap.MaxResponseTimeMs)
}
