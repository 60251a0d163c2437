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

// Package confload loads the RSI host's Configuration from a file via
// viper, with fsnotify-backed live reload for the fields treated as
// mutable post-Start (liveness timeout and verbosity only — bind
// address and port are immutable once Start has run; the watch callback
// still reports a change to either, and the caller ignores it).
package confload

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/sabouaram/rsihost/duration"
)

// Configuration is the immutable startup option set for the engine.
type Configuration struct {
	BindAddress       string
	BindPort          uint16
	LivenessTimeoutMs int64
	Verbose           bool
}

// DefaultConfiguration matches Init(nil)'s defaults: bind 0.0.0.0:59152,
// 1000ms timeout, non-verbose.
func DefaultConfiguration() Configuration {
	return Configuration{
		BindAddress:       "0.0.0.0",
		BindPort:          59152,
		LivenessTimeoutMs: 1000,
		Verbose:           false,
	}
}

// Loader owns the viper instance backing a loaded Configuration and
// dispatches a callback with the re-decoded Configuration whenever the
// file changes on disk.
type Loader struct {
	v        *viper.Viper
	path     string
	onReload func(Configuration)
}

// Load reads path (any format viper supports: yaml, json, toml) into a
// Configuration, filling unset fields from DefaultConfiguration.
func Load(path string) (Configuration, *Loader, error) {
	v := viper.New()
	v.SetConfigFile(path)

	def := DefaultConfiguration()
	v.SetDefault("bind_address", def.BindAddress)
	v.SetDefault("bind_port", def.BindPort)
	v.SetDefault("liveness_timeout", "1s")
	v.SetDefault("verbose", def.Verbose)

	if err := v.ReadInConfig(); err != nil {
		return Configuration{}, nil, fmt.Errorf("confload: reading %s: %w", path, err)
	}

	cfg, err := decode(v)
	if err != nil {
		return Configuration{}, nil, err
	}

	return cfg, &Loader{v: v, path: path}, nil
}

// Watch installs an fsnotify watch (via viper.WatchConfig) and invokes
// onReload with the newly decoded Configuration on every change. Only
// LivenessTimeoutMs and Verbose are expected to differ meaningfully post-
// Start; the caller is responsible for ignoring BindAddress/BindPort
// deltas, since those fields are immutable once the engine is running.
func (l *Loader) Watch(onReload func(Configuration)) {
	l.onReload = onReload
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(l.v)
		if err != nil {
			return
		}
		if l.onReload != nil {
			l.onReload(cfg)
		}
	})
	l.v.WatchConfig()
}

func decode(v *viper.Viper) (Configuration, error) {
	timeoutStr := v.GetString("liveness_timeout")
	var timeoutMs int64
	if timeoutStr == "0" || timeoutStr == "" {
		timeoutMs = 0
	} else {
		d, err := duration.Parse(timeoutStr)
		if err != nil {
			return Configuration{}, fmt.Errorf("confload: liveness_timeout: %w", err)
		}
		timeoutMs = d.Time().Milliseconds()
	}

	return Configuration{
		BindAddress:       v.GetString("bind_address"),
		BindPort:          uint16(v.GetUint32("bind_port")),
		LivenessTimeoutMs: timeoutMs,
		Verbose:           v.GetBool("verbose"),
	}, nil
}
