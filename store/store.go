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

// Package store holds the engine's single critical section: latest
// Cartesian pose, latest joint pose, pending correction, and the
// statistics aggregate. Every accessor acquires the lock, copies out, and
// releases it — callers never see a partially updated snapshot.
//
// Packet counters and the connection flag are kept as lock-free atomics
// (the module's own atomic.Value wrapper and sync/atomic counters)
// outside the mutex, per the recorded design freedom to tighten the
// critical section beyond its minimum shape: the engine's hot path
// increments them without ever blocking on the pose/stats lock.
package store

import (
	"net"
	"sync"
	"sync/atomic"

	libatm "github.com/sabouaram/rsihost/atomic"
	"github.com/sabouaram/rsihost/codec"
)

// noResponseYetMs seeds min_response_time_ms so the first real sample
// always replaces it.
const noResponseYetMs = -1

// Statistics is an observable snapshot of the rolling counters and timing
// aggregate. Copies are returned by Snapshot; callers never see the live
// fields.
type Statistics struct {
	PacketsReceived     uint64
	PacketsSent         uint64
	LateResponses       uint64
	ConnectionLostCount uint64
	IsConnected         bool
	LastPacketTimestampUs int64
	AvgResponseTimeMs   float64
	MinResponseTimeMs   float64
	MaxResponseTimeMs   float64
}

// Store is the engine's mutex-protected state plus its lock-free counters
// and connection flag.
type Store struct {
	mu sync.Mutex

	pose       codec.CartesianPose
	joint      codec.JointPose
	correction codec.CartesianCorrection

	responseCount   uint64
	responseSumMs   float64
	minResponseMs   float64
	maxResponseMs   float64

	packetsReceived     atomic.Uint64
	packetsSent         atomic.Uint64
	lateResponses       atomic.Uint64
	connectionLostCount atomic.Uint64

	connected             libatm.Value[bool]
	lastPacketTimestampUs atomic.Int64
	peerAddr              libatm.Value[*net.UDPAddr]
}

// New returns a freshly seeded Store, ready for a new Init/Start cycle.
func New() *Store {
	s := &Store{
		minResponseMs: noResponseYetMs,
		connected:     libatm.NewValue[bool](),
		peerAddr:      libatm.NewValue[*net.UDPAddr](),
	}
	return s
}

// Reset re-seeds all counters and timings, per Init's documented
// responsibility to start statistics over. Pose/joint/correction records
// are also cleared: a fresh Init never carries over a stale robot reading.
func (s *Store) Reset() {
	s.mu.Lock()
	s.pose = codec.CartesianPose{}
	s.joint = codec.JointPose{}
	s.correction = codec.CartesianCorrection{}
	s.responseCount = 0
	s.responseSumMs = 0
	s.minResponseMs = noResponseYetMs
	s.maxResponseMs = 0
	s.mu.Unlock()

	s.packetsReceived.Store(0)
	s.packetsSent.Store(0)
	s.lateResponses.Store(0)
	s.connectionLostCount.Store(0)
	s.connected.Store(false)
	s.lastPacketTimestampUs.Store(0)
	s.peerAddr.Store(nil)
}

// ApplyInbound records a successfully IPOC-extracted datagram. cart/joint
// are applied only when present (the robot omits either fragment
// independently from cycle to cycle; an absent fragment leaves the
// existing record untouched rather than being zeroed). The timestamp and
// IPOC are imprinted on whichever records are present, per the engine's tick
// 2c. peer is staged for the send path under the same critical section.
func (s *Store) ApplyInbound(cart *codec.CartesianPose, joint *codec.JointPose, ipoc uint64, tsUs int64, peer *net.UDPAddr) {
	s.mu.Lock()
	if cart != nil {
		p := *cart
		p.TimestampUs = tsUs
		p.IPOC = ipoc
		s.pose = p
	}
	if joint != nil {
		j := *joint
		j.TimestampUs = tsUs
		j.IPOC = ipoc
		s.joint = j
	}
	s.lastPacketTimestampUs.Store(tsUs)
	s.peerAddr.Store(peer)
	s.mu.Unlock()
}

// PendingResponse returns the correction to format into the next outbound
// datagram, under the same lock used to write it.
func (s *Store) PendingResponse() codec.CartesianCorrection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correction
}

// SetCorrection installs the next Cartesian correction. It is not cleared
// on read: the same correction is resent every cycle until overwritten,
// independently of any other field.
func (s *Store) SetCorrection(c codec.CartesianCorrection) {
	s.mu.Lock()
	s.correction = c
	s.mu.Unlock()
}

// CartesianPose returns a copy of the latest Cartesian pose.
func (s *Store) CartesianPose() codec.CartesianPose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// JointPose returns a copy of the latest joint pose.
func (s *Store) JointPose() codec.JointPose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joint
}

// Peer returns the address the most recent inbound datagram arrived from,
// or nil before the first one.
func (s *Store) Peer() *net.UDPAddr {
	return s.peerAddr.Load()
}

// IncrementReceived bumps packets_received. It is a lock-free counter so
// the hot path never blocks on the pose/stats mutex for this alone.
func (s *Store) IncrementReceived() {
	s.packetsReceived.Add(1)
}

// IncrementSent bumps packets_sent. The caller must ensure packets_sent ≤
// packets_received; callers only call this after a successful
// IncrementReceived this cycle.
func (s *Store) IncrementSent() {
	s.packetsSent.Add(1)
}

// MarkConnected transitions is_connected to true. It is idempotent; the
// engine calls it only when the flag is currently false, i.e. on the
// first accepted datagram after Start or after a disconnect.
func (s *Store) MarkConnected() {
	s.connected.Store(true)
}

// MarkDisconnected transitions is_connected to false and bumps
// connection_lost_count. Called by the watchdog exactly once per
// disconnect event.
func (s *Store) MarkDisconnected() {
	s.connected.Store(false)
	s.connectionLostCount.Add(1)
}

// IsConnected reports the current connection flag.
func (s *Store) IsConnected() bool {
	return s.connected.Load()
}

// LastPacketTimestampUs returns the host timestamp of the most recently
// accepted inbound datagram, used by the watchdog's elapsed-time check.
func (s *Store) LastPacketTimestampUs() int64 {
	return s.lastPacketTimestampUs.Load()
}

// RecordResponseTime folds one iteration's processing time (in
// milliseconds) into the rolling average/min/max and bumps
// late_responses when the iteration exceeded the 4ms cycle budget.
func (s *Store) RecordResponseTime(ms float64, lateThresholdMs float64) {
	s.mu.Lock()
	s.responseCount++
	s.responseSumMs += ms
	if s.minResponseMs == noResponseYetMs || ms < s.minResponseMs {
		s.minResponseMs = ms
	}
	if ms > s.maxResponseMs {
		s.maxResponseMs = ms
	}
	s.mu.Unlock()

	if ms > lateThresholdMs {
		s.lateResponses.Add(1)
	}
}

// Snapshot returns a consistent copy of every tracked statistic.
func (s *Store) Snapshot() Statistics {
	s.mu.Lock()
	var avg, min float64
	if s.responseCount > 0 {
		avg = s.responseSumMs / float64(s.responseCount)
	}
	if s.minResponseMs == noResponseYetMs {
		min = 0
	} else {
		min = s.minResponseMs
	}
	max := s.maxResponseMs
	s.mu.Unlock()

	return Statistics{
		PacketsReceived:       s.packetsReceived.Load(),
		PacketsSent:           s.packetsSent.Load(),
		LateResponses:         s.lateResponses.Load(),
		ConnectionLostCount:   s.connectionLostCount.Load(),
		IsConnected:           s.connected.Load(),
		LastPacketTimestampUs: s.lastPacketTimestampUs.Load(),
		AvgResponseTimeMs:     avg,
		MinResponseTimeMs:     min,
		MaxResponseTimeMs:     max,
	}
}
