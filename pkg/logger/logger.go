package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSize = 10
	maxBack = 5
	maxAge  = 30
)

// NewLogger writes to the console and to a gzip-rotated file. Level is
// Debug outside production so local runs show the cache and repository
// chatter.
func NewLogger(filePath, serviceName string, production bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}

	fileRotator := &lumberjack.Logger{
		Filename:   filePath, // log file location
		MaxSize:    maxSize,  // megabytes before rotation
		MaxBackups: maxBack,  // number of old files to retain
		MaxAge:     maxAge,   // days to retain rotated files
		Compress:   true,     // gzip old log files
	}

	writers := []io.Writer{consoleWriter, fileRotator}
	multiWriter := zerolog.MultiLevelWriter(writers...)

	level := zerolog.DebugLevel
	if production {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(multiWriter).With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger().
		Level(level)

	log.Info().
		Str("logsFilePath", filePath).
		Str("serviceName", serviceName).
		Msg("Logger initialized with file rotation")

	return log
}
