// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TimeFormat is the timestamp layout of pretty output.
const TimeFormat = "2006-01-02T15:04:05.000"

// Setup points the global logger at stderr. Pretty output goes through
// a colorable writer so Windows consoles render the level colors.
func Setup(level string, pretty bool) error {
	logger, err := New(colorable.NewColorableStderr(), level, pretty)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger
	return nil
}

// New returns a logger writing to w at the given level. An empty level
// means info.
func New(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: TimeFormat}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
