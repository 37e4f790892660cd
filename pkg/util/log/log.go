// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package log is the process-wide logger of the agent. It wraps a seelog
// logger and buffers lines emitted before SetupLogger is called.
package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cihub/seelog"
)

var (
	logger *agentLogger

	// Lines logged before the logger is set up, typically while the
	// configuration is being loaded. Replayed by SetupLogger.
	logsBuffer           = []func(){}
	bufferLogsBeforeInit = true
	bufferMutex          sync.Mutex
)

// caller -> exported func -> logFormat -> write -> seelog
const defaultStackDepth = 3

type agentLogger struct {
	inner seelog.LoggerInterface
	level seelog.LogLevel
	l     sync.RWMutex
}

// SetupLogger installs l as the process-wide logger at the given level and
// flushes any line buffered so far.
func SetupLogger(l seelog.LoggerInterface, level string) {
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(level))
	if !ok {
		lvl = seelog.InfoLvl
	}
	l.SetAdditionalStackDepth(defaultStackDepth) //nolint:errcheck

	bufferMutex.Lock()
	defer bufferMutex.Unlock()

	logger = &agentLogger{inner: l, level: lvl}
	bufferLogsBeforeInit = false
	for _, logLine := range logsBuffer {
		logLine()
	}
	logsBuffer = []func(){}
}

func addLogToBuffer(logHandle func()) {
	bufferMutex.Lock()
	defer bufferMutex.Unlock()

	logsBuffer = append(logsBuffer, logHandle)
}

func (a *agentLogger) shouldLog(level seelog.LogLevel) bool {
	a.l.RLock()
	defer a.l.RUnlock()
	return level >= a.level
}

func (a *agentLogger) write(level seelog.LogLevel, s string) error {
	a.l.Lock()
	defer a.l.Unlock()

	switch level {
	case seelog.TraceLvl:
		a.inner.Trace(s)
	case seelog.DebugLvl:
		a.inner.Debug(s)
	case seelog.InfoLvl:
		a.inner.Info(s)
	case seelog.WarnLvl:
		return a.inner.Warn(s)
	case seelog.ErrorLvl:
		return a.inner.Error(s)
	case seelog.CriticalLvl:
		return a.inner.Critical(s)
	}
	return nil
}

func ready() bool {
	return logger != nil && logger.inner != nil
}

func logFormat(level seelog.LogLevel, bufferFunc func(), format string, params ...interface{}) {
	if ready() && logger.shouldLog(level) {
		logger.write(level, fmt.Sprintf(format, params...)) //nolint:errcheck
	} else if bufferLogsBeforeInit && !ready() {
		addLogToBuffer(bufferFunc)
	}
}

func logFormatWithError(level seelog.LogLevel, bufferFunc func(), fallbackStderr bool, format string, params ...interface{}) error {
	msg := fmt.Sprintf(format, params...)
	if ready() && logger.shouldLog(level) {
		logger.write(level, msg) //nolint:errcheck
		return errors.New(msg)
	} else if bufferLogsBeforeInit && !ready() {
		addLogToBuffer(bufferFunc)
	}
	if fallbackStderr {
		fmt.Fprintf(os.Stderr, "%s: %s\n", level.String(), msg)
	}
	return errors.New(msg)
}

func joinArgs(v []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}

// Tracef logs with format at the trace level
func Tracef(format string, params ...interface{}) {
	logFormat(seelog.TraceLvl, func() { Tracef(format, params...) }, format, params...)
}

// Debug logs at the debug level
func Debug(v ...interface{}) {
	logFormat(seelog.DebugLvl, func() { Debug(v...) }, "%s", joinArgs(v))
}

// Debugf logs with format at the debug level
func Debugf(format string, params ...interface{}) {
	logFormat(seelog.DebugLvl, func() { Debugf(format, params...) }, format, params...)
}

// Info logs at the info level
func Info(v ...interface{}) {
	logFormat(seelog.InfoLvl, func() { Info(v...) }, "%s", joinArgs(v))
}

// Infof logs with format at the info level
func Infof(format string, params ...interface{}) {
	logFormat(seelog.InfoLvl, func() { Infof(format, params...) }, format, params...)
}

// Warn logs at the warn level and returns an error containing the message
func Warn(v ...interface{}) error {
	return logFormatWithError(seelog.WarnLvl, func() { Warn(v...) }, false, "%s", joinArgs(v))
}

// Warnf logs with format at the warn level and returns an error containing the formatted message
func Warnf(format string, params ...interface{}) error {
	return logFormatWithError(seelog.WarnLvl, func() { Warnf(format, params...) }, false, format, params...)
}

// Error logs at the error level and returns an error containing the message
func Error(v ...interface{}) error {
	return logFormatWithError(seelog.ErrorLvl, func() { Error(v...) }, true, "%s", joinArgs(v))
}

// Errorf logs with format at the error level and returns an error containing the formatted message
func Errorf(format string, params ...interface{}) error {
	return logFormatWithError(seelog.ErrorLvl, func() { Errorf(format, params...) }, true, format, params...)
}

// Criticalf logs with format at the critical level and returns an error containing the formatted message
func Criticalf(format string, params ...interface{}) error {
	return logFormatWithError(seelog.CriticalLvl, func() { Criticalf(format, params...) }, true, format, params...)
}

// ShouldLog returns whether a line at the given level would be written
func ShouldLog(level seelog.LogLevel) bool {
	return ready() && logger.shouldLog(level)
}

// Flush flushes the underlying inner log
func Flush() {
	if ready() {
		logger.inner.Flush()
	}
}

// ChangeLogLevel changes the current log level. Valid levels are trace,
// debug, info, warn, error, critical and off.
func ChangeLogLevel(level string) error {
	if !ready() {
		return errors.New("cannot change loglevel: logger not initialized")
	}
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(level))
	if !ok {
		return fmt.Errorf("bad log level %q", level)
	}
	logger.l.Lock()
	logger.level = lvl
	logger.l.Unlock()
	return nil
}

// GetLogLevel returns the current log level
func GetLogLevel() (seelog.LogLevel, error) {
	if ready() {
		logger.l.RLock()
		defer logger.l.RUnlock()
		return logger.level, nil
	}
	return seelog.InfoLvl, errors.New("cannot get loglevel: logger not initialized")
}
