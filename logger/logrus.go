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
	"github.com/sirupsen/logrus"
)

type lr struct {
	lvl Level
	log *logrus.Entry
}

// NewLogrus returns an alternate ambient Logger backed by sirupsen/logrus,
// for callers embedding the engine in a host process that already
// standardizes its own logging on logrus.
func NewLogrus(name string, level Level) Logger {
	base := logrus.New()
	base.SetLevel(toLogrusLevel(level))
	return &lr{lvl: level, log: base.WithField("component", name)}
}

func toLogrusLevel(l Level) logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	case Off:
		return logrus.PanicLevel
	}
	return logrus.InfoLevel
}

func (l *lr) SetLevel(lvl Level) {
	l.lvl = lvl
	l.log.Logger.SetLevel(toLogrusLevel(lvl))
}

func (l *lr) GetLevel() Level { return l.lvl }

func (l *lr) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l *lr) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l *lr) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l *lr) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

func (l *lr) With(keyvals ...any) Logger {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keyvals); i += 2 {
		if k, ok := keyvals[i].(string); ok {
			fields[k] = keyvals[i+1]
		}
	}
	return &lr{lvl: l.lvl, log: l.log.WithFields(fields)}
}
