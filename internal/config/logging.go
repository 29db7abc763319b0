package config

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/minimute-app/minimute/internal/models"
)

// SetupLogging points the standard logger at the rotating log file in
// ~/.minimute/logs. The returned closer flushes and closes the file.
func SetupLogging(prefix string, cfg models.LogConfig) (io.Closer, error) {
	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, err
	}

	path, err := GlobalLogFile()
	if err != nil {
		return nil, err
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	log.SetOutput(out)
	log.SetPrefix(prefix)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return out, nil
}
