/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"io"
	"os"
	"sync"
)

var exitHandler = func() { os.Exit(-1) }

// Logger represents a common logger interface.
type Logger interface {
	io.Closer

	// Debugf logs a 'debug' templated message.
	Debugf(format string, args ...interface{})

	// Infof logs an 'info' templated message.
	Infof(format string, args ...interface{})

	// Warnf logs a 'warning' templated message.
	Warnf(format string, args ...interface{})

	// Errorf logs an 'error' templated message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a 'fatal' templated message.
	// Implementations must not terminate the process.
	Fatalf(format string, args ...interface{})
}

var (
	instMu sync.RWMutex
	inst   Logger = Disabled
)

// Set sets the global logger.
func Set(l Logger) {
	instMu.Lock()
	_ = inst.Close()
	inst = l
	instMu.Unlock()
}

// Unset disables the global logger.
func Unset() {
	Set(Disabled)
}

func instance() Logger {
	instMu.RLock()
	l := inst
	instMu.RUnlock()
	return l
}

// Debugf logs a 'debug' message.
func Debugf(format string, args ...interface{}) {
	instance().Debugf(format, args...)
}

// Infof logs an 'info' message.
func Infof(format string, args ...interface{}) {
	instance().Infof(format, args...)
}

// Warnf logs a 'warning' message.
func Warnf(format string, args ...interface{}) {
	instance().Warnf(format, args...)
}

// Errorf logs an 'error' message.
func Errorf(format string, args ...interface{}) {
	instance().Errorf(format, args...)
}

// Error logs an 'error' value.
func Error(err error) {
	instance().Errorf("%v", err)
}

// Fatalf logs a 'fatal' message.
// Application will terminate after logging.
func Fatalf(format string, args ...interface{}) {
	l := instance()
	l.Fatalf(format, args...)
	_ = l.Close()
	exitHandler()
}

// Disabled represents a disabled logger.
var Disabled Logger = &disabledLogger{}

type disabledLogger struct{}

func (*disabledLogger) Debugf(string, ...interface{}) {}
func (*disabledLogger) Infof(string, ...interface{})  {}
func (*disabledLogger) Warnf(string, ...interface{})  {}
func (*disabledLogger) Errorf(string, ...interface{}) {}
func (*disabledLogger) Fatalf(string, ...interface{}) {}
func (*disabledLogger) Close() error                  { return nil }
