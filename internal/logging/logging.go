// Package logging points the standard logger at stderr and, when a log file
// is configured, a size-rotated file.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/gysosin/hwinfo/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs the log output described by cfg and returns the writer so
// other components (the HTTP router) can share it. The returned func closes
// the rotating file, if any.
func Setup(cfg config.Config) (io.Writer, func() error) {
	w, closeFn := writer(cfg, os.Stderr)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return w, closeFn
}

func writer(cfg config.Config, console io.Writer) (io.Writer, func() error) {
	if cfg.LogFile == "" {
		return console, func() error { return nil }
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	}
	return io.MultiWriter(console, rotator), rotator.Close
}
