package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger for the given gin mode.
// An empty mode counts as debug, the config default.
func Init(mode string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := io.Writer(os.Stdout)
	if isDebug(mode) {
		out = os.Stderr
	}
	log.Logger = New(out, mode)
}

// New builds a logger writing console lines in debug mode and JSON otherwise.
func New(w io.Writer, mode string) zerolog.Logger {
	if isDebug(mode) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func isDebug(mode string) bool {
	return mode == "" || mode == gin.DebugMode
}
