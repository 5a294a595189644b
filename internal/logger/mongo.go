package logger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// NewMongoLogger builds the logger used by the MongoDB command monitor in
// the local environment.
//
// The "body" field holds the raw command as Extended JSON. Long bodies are
// cut at 200 characters; non-string fields are pretty printed.
func NewMongoLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
		FormatFieldValue: func(i interface{}) string {
			switch v := i.(type) {
			case string:
				if len(v) > 200 {
					return v[:200] + "..."
				}
				return v
			case json.Number:
				return v.String()
			default:
				b, err := json.MarshalIndent(v, "", "  ")
				if err != nil {
					return fmt.Sprintf("%v", v)
				}
				return string(b)
			}
		},
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "mongo").
		Logger()
}

// GetMongoCommandLogLevel maps the application level onto the level used
// for per-command lines. Commands are chatty, so they only show up when the
// application itself runs at debug.
func GetMongoCommandLogLevel(level zerolog.Level) zerolog.Level {
	if level <= zerolog.DebugLevel {
		return zerolog.DebugLevel
	}
	return zerolog.Disabled
}
