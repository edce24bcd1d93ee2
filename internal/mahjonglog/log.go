// Package mahjonglog is a thin charmbracelet/log wrapper used for engine
// diagnostics (phase transitions, poisoned-engine errors, CLI output).
//
// Ground: lamyinia-GoMahjong's common/log/log.go.
package mahjonglog

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger = newDefault()

func newDefault() *log.Logger {
	l := log.New(os.Stderr)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetLevel(log.InfoLevel)
	return l
}

// Init configures the package logger's prefix and level.
func Init(prefix string, level log.Level) {
	logger.SetPrefix(prefix)
	logger.SetLevel(level)
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
		return
	}
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
		return
	}
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
		return
	}
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
		return
	}
	logger.Debugf(format, args...)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
		return
	}
	logger.Fatalf(format, args...)
}
