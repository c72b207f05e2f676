// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package audit appends calculator events to a rotating log file.
package audit

import (
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bdrung/isa-calculator/internal/isa"
)

// FileName is the name of the audit log inside the log directory.
const FileName = "isa-calculator.log"

// Log writes one line per engine event. Failures to write are reported by
// logrus on stderr and otherwise ignored.
type Log struct {
	logger *logrus.Logger
	closer io.Closer
}

// Open creates an audit log in dir, rotating it at 10 MB and keeping three
// old files for three days.
func Open(dir string) *Log {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     3,
	}
	l := New(file)
	l.closer = file
	return l
}

// New creates an audit log writing to w.
func New(w io.Writer) *Log {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Log{logger: logger}
}

// Event implements isa.EventSink.
func (l *Log) Event(e isa.Event) {
	entry := l.logger.WithField("event", string(e.Kind))
	if e.Key != "" {
		entry = entry.WithField("key", e.Key)
	}
	if e.Err != nil {
		entry.WithField("kind", isa.KindOf(e.Err).String()).Warn(e.Msg)
		return
	}
	entry.Info(e.Msg)
}

// Printf records a free-form message such as a settings or export notice.
func (l *Log) Printf(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
