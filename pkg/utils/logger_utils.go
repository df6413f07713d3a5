package utils

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger.
// An unknown level name falls back to info. pretty selects the console writer.
func InitLogger(level string, pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out zerolog.Logger
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stdout)
	}
	log.Logger = out.With().Timestamp().Logger()

	log.Info().Str("level", lvl.String()).Bool("pretty", pretty).Msg("Logger initialized")
}

// levelForStatus maps an HTTP status to the level its access log line is written at.
func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= http5xx:
		return zerolog.ErrorLevel
	case status >= http4xx:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

const (
	http4xx = 400
	http5xx = 500
)

// GinLogger writes one access log line per request.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		log.WithLevel(levelForStatus(status)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("elapsed", time.Since(began)).
			Str("ip", c.ClientIP()).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("http request")
	}
}

func emit(event *zerolog.Event, message string, fields []map[string]interface{}) {
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogError logs err with optional structured fields. A nil err is ignored.
func LogError(err error, message string, fields ...map[string]interface{}) {
	if err == nil {
		return
	}
	emit(log.Error().Err(err), message, fields)
}

func LogWarn(message string, fields ...map[string]interface{}) {
	emit(log.Warn(), message, fields)
}

func LogInfo(message string, fields ...map[string]interface{}) {
	emit(log.Info(), message, fields)
}

func LogDebug(message string, fields ...map[string]interface{}) {
	emit(log.Debug(), message, fields)
}
