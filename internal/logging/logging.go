// Package logging builds the slog loggers used by every command.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options selects level, format and destination of a logger.
type Options struct {
	Level  slog.Level
	Format string // "json" (default) or "text"
	File   string // empty for stdout, os.DevNull to discard
}

// New returns a logger for opts and a func releasing its output. An
// unusable file or format falls back to stdout or JSON and the problem is
// logged through the returned logger.
func New(opts Options) (*slog.Logger, func()) {
	noop := func() {}

	var (
		output  io.Writer = os.Stdout
		release           = noop
		openErr error
	)
	switch opts.File {
	case "":
	case os.DevNull:
		return slog.New(slog.DiscardHandler), noop
	default:
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			openErr = err
			break
		}
		output = f
		release = func() { _ = f.Close() }
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	format := strings.ToLower(opts.Format)
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(output, handlerOpts)
	}
	logger := slog.New(handler)

	if openErr != nil {
		logger.Warn("could not open log file", slog.String("file", opts.File), slog.String("error", openErr.Error()))
	}
	if format != "" && format != FormatText && format != FormatJSON {
		logger.Warn("unknown log format, using json", slog.String("format", opts.Format))
	}
	return logger, release
}
