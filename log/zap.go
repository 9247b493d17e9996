/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	lg    *zap.Logger
	sg    *zap.SugaredLogger
	files []io.Closer
}

// New returns a zap backed logger writing to output and, if set, to the configured log file.
func New(cfg *Config, output io.Writer) (Logger, error) {
	syncers := []zapcore.WriteSyncer{zapcore.AddSync(output)}

	var files []io.Closer
	if len(cfg.LogPath) > 0 {
		// create logFile intermediate directories.
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), os.ModePerm); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		syncers = append(syncers, f)
		files = append(files, f)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.NewMultiWriteSyncer(syncers...)),
		zap.NewAtomicLevelAt(cfg.Level.zapLevel()),
	)
	l := newZapLogger(core)
	l.files = files
	return l, nil
}

func newZapLogger(core zapcore.Core) *zapLogger {
	lg := zap.New(core, zap.WithFatalHook(noExitHook{}))
	return &zapLogger{lg: lg, sg: lg.Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.sg.Debugf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...interface{}) {
	l.sg.Infof(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...interface{}) {
	l.sg.Warnf(format, args...)
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.sg.Errorf(format, args...)
}

func (l *zapLogger) Fatalf(format string, args ...interface{}) {
	l.sg.Fatalf(format, args...)
}

func (l *zapLogger) Close() error {
	_ = l.lg.Sync()
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// noExitHook leaves process termination to the package level Fatalf.
type noExitHook struct{}

func (noExitHook) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}
