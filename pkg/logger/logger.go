package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
)

const (
	APP        = "APP"
	CONFIG     = "CONFIG"
	EXTRACT    = "EXTRACT"
	GEMINI     = "GEMINI"
	HANDLER    = "HANDLER"
	MCP        = "MCP"
	MIDDLEWARE = "MIDDLEWARE"
	REDIS      = "REDIS"
	SERVICE    = "SERVICE"
	TOOLS      = "TOOLS"
)

// Init configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
// Logs always go to stderr; stdout belongs to the stdio MCP transport.
func Init() {
	InitWithWriter(os.Stderr)
}

// InitWithWriter is Init with an explicit destination, mostly for tests.
func InitWithWriter(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(toZerologLevel(getLogLevel()))

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func getLogLevel() LogLevel {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func formatMessage(format string, v ...interface{}) string {
	if len(v) == 0 {
		return format
	}
	return fmt.Sprintf(format, v...)
}

func Debug(namespace, format string, v ...interface{}) {
	log.Debug().Str("namespace", namespace).Msg(formatMessage(format, v...))
}

func Info(namespace, format string, v ...interface{}) {
	log.Info().Str("namespace", namespace).Msg(formatMessage(format, v...))
}

func Warn(namespace, format string, v ...interface{}) {
	log.Warn().Str("namespace", namespace).Msg(formatMessage(format, v...))
}

func Error(namespace, format string, v ...interface{}) {
	log.Error().Str("namespace", namespace).Msg(formatMessage(format, v...))
}

// Fatal logs at fatal level and exits the process.
func Fatal(namespace, format string, v ...interface{}) {
	log.Fatal().Str("namespace", namespace).Msg(formatMessage(format, v...))
}
