// Package logger wraps go-logging with a console backend and an optional
// file backend for the portfolio server.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
)

const (
	module      = "portfolio"
	logFileName = "portfolio.log"
	timeFormat  = "2006/01/02 15:04:05"
)

var (
	logger  = logging.MustGetLogger(module)
	logFile *os.File
)

// ParseLevel maps a level name such as "debug" or "WARNING" onto a go-logging level.
// Unknown names fall back to INFO.
func ParseLevel(name string) logging.Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARN" {
		name = "WARNING"
	}
	level, err := logging.LogLevel(name)
	if err != nil {
		return logging.INFO
	}
	return level
}

// InitLogger installs the console backend at the given level and, when logDir
// is not empty, a DEBUG file backend writing into logDir.
func InitLogger(level logging.Level, logDir string) {
	backends := make([]logging.Backend, 0, 2)

	console := logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0),
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level:.4s} - %{message}`),
	)
	leveled := logging.AddModuleLevel(console)
	leveled.SetLevel(level, module)
	backends = append(backends, leveled)

	if logDir != "" {
		if fileBackend := initFileBackend(logDir); fileBackend != nil {
			leveledFile := logging.AddModuleLevel(fileBackend)
			leveledFile.SetLevel(logging.DEBUG, module)
			backends = append(backends, leveledFile)
		}
	}

	logger.SetBackend(logging.MultiLogger(backends...))
}

func initFileBackend(logDir string) logging.Backend {
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	return logging.NewBackendFormatter(
		logging.NewLogBackend(file, "", 0),
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level} - %{message}`),
	)
}

// CloseLogger closes the log file if one was opened.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
