// Package logger provides a configured zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
	"golang.org/x/term"

	"github.com/harperreed/touchbase/config"
)

// ServiceName is attached to every log line.
const ServiceName = "touchbase"

// LogFileName is the file used while the terminal UI owns the screen.
const LogFileName = "touchbase.log"

func init() {
	// Call sites use .Stack() on error events; plain errors get a stack attached.
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
}

// New returns a logger writing to out. Console formatting is used when
// LogFormat is "console", or "auto" and out is a terminal.
func New(cfg *config.Config, out io.Writer) (zerolog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), err
	}

	w := out
	if useConsole(cfg.LogFormat, out) {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    !isTerminal(out),
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Str("service", ServiceName).
		Timestamp().
		Logger(), nil
}

// OpenLogFile opens (appending) the log file in the XDG state directory.
func OpenLogFile() (*os.File, string, error) {
	dir := filepath.Join(xdg.StateHome, config.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

func useConsole(format string, out io.Writer) bool {
	switch format {
	case config.LogFormatConsole:
		return true
	case config.LogFormatJSON:
		return false
	}
	return isTerminal(out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Elapsed rounds a duration for log fields.
func Elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
