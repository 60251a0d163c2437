/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

package logger

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

type hc struct {
	name string
	lvl  Level
	log  hclog.Logger
}

// New returns the default ambient Logger, backed by hashicorp/go-hclog and
// writing to stderr.
func New(name string, level Level) Logger {
	l := hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           level.hclogLevel(),
		Output:          os.Stderr,
		IncludeLocation: false,
	})
	return &hc{name: name, lvl: level, log: l}
}

func (h *hc) SetLevel(l Level) {
	h.lvl = l
	h.log.SetLevel(l.hclogLevel())
}

func (h *hc) GetLevel() Level { return h.lvl }

func (h *hc) Debugf(format string, args ...any) { h.log.Debug(fmt.Sprintf(format, args...)) }
func (h *hc) Infof(format string, args ...any)  { h.log.Info(fmt.Sprintf(format, args...)) }
func (h *hc) Warnf(format string, args ...any)  { h.log.Warn(fmt.Sprintf(format, args...)) }
func (h *hc) Errorf(format string, args ...any) { h.log.Error(fmt.Sprintf(format, args...)) }

func (h *hc) With(keyvals ...any) Logger {
	return &hc{name: h.name, lvl: h.lvl, log: h.log.With(keyvals...)}
}
