/*
NAME
  logging.go

DESCRIPTION
  A small logging.Logger-compatible adapter (matching the interface shape
  of github.com/ausocean/utils/logging used throughout the teacher repo)
  backed by zap, with a lumberjack rolling file as the default sink.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package logging provides the structured logger used across the color
// pipeline packages, matching the Debug/Info/Warning/Error/SetLevel shape
// of github.com/ausocean/utils/logging so callers can swap in that package
// directly if desired.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level mirrors ausocean/utils/logging's int8 severity levels.
type Level int8

const (
	Debug Level = iota
	Info
	Warning
	Error
	Fatal
)

// Logger is the logging interface consumed by every color-pipeline
// component. It matches the shape of ausocean/utils/logging.Logger.
type Logger interface {
	Debug(msg string, params ...interface{})
	Info(msg string, params ...interface{})
	Warning(msg string, params ...interface{})
	Error(msg string, params ...interface{})
	SetLevel(level int8)
}

type zapLogger struct {
	l     *zap.SugaredLogger
	level *zap.AtomicLevel
}

// New returns a Logger that writes to w (commonly a *lumberjack.Logger) at
// the given initial level.
func New(level Level, w io.Writer) Logger {
	al := zap.NewAtomicLevelAt(toZapLevel(level))
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)
	l := zap.New(core).Sugar()
	return &zapLogger{l: l, level: &al}
}

// NewRollingFile returns a Logger writing to a lumberjack-rolled file at
// path, the same default sink construction the teacher's cmd/* binaries use
// for field deployments.
func NewRollingFile(level Level, path string, maxSizeMB, maxBackups, maxAgeDays int) Logger {
	roller := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return New(level, roller)
}

func (z *zapLogger) Debug(msg string, params ...interface{})   { z.l.Debugw(msg, params...) }
func (z *zapLogger) Info(msg string, params ...interface{})    { z.l.Infow(msg, params...) }
func (z *zapLogger) Warning(msg string, params ...interface{}) { z.l.Warnw(msg, params...) }
func (z *zapLogger) Error(msg string, params ...interface{})   { z.l.Errorw(msg, params...) }

func (z *zapLogger) SetLevel(level int8) {
	z.level.SetLevel(toZapLevel(Level(level)))
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Info:
		return zapcore.InfoLevel
	case Warning:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	case Fatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// TestLogger adapts a *testing.T into a Logger for use in package tests,
// mirroring the teacher's `Log = (*logging.TestLogger)(t)` pattern.
type TestLogger struct {
	T interface {
		Logf(format string, args ...interface{})
	}
}

func NewTestLogger(t interface {
	Logf(format string, args ...interface{})
}) *TestLogger {
	return &TestLogger{T: t}
}

func (t *TestLogger) Debug(msg string, params ...interface{})   { t.T.Logf("DEBUG: %s %v", msg, params) }
func (t *TestLogger) Info(msg string, params ...interface{})    { t.T.Logf("INFO: %s %v", msg, params) }
func (t *TestLogger) Warning(msg string, params ...interface{}) { t.T.Logf("WARN: %s %v", msg, params) }
func (t *TestLogger) Error(msg string, params ...interface{})   { t.T.Logf("ERROR: %s %v", msg, params) }
func (t *TestLogger) SetLevel(level int8)                       {}
