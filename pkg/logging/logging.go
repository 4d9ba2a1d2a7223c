// Package logging builds slog loggers from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a logger for cfg writing to the configured output.
func New(cfg *Config) *slog.Logger {
	switch cfg.Output {
	case OutputDiscard:
		return Discard()
	case OutputStderr:
		return NewWriter(cfg, os.Stderr)
	default:
		return NewWriter(cfg, os.Stdout)
	}
}

// NewWriter returns a logger for cfg writing to w, ignoring cfg.Output.
func NewWriter(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.ToSlogLevel()}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Level is the minimum severity a logger emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Validate rejects unknown levels.
func (l Level) Validate() error {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	}
	return fmt.Errorf("logging: unknown level %q", string(l))
}

// ToSlogLevel maps l to a slog level. Unknown levels map to info.
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Validate rejects unknown formats.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("logging: unknown format %q", string(f))
}

// Output names the destination of log records.
type Output string

const (
	OutputStdout  Output = "stdout"
	OutputStderr  Output = "stderr"
	OutputDiscard Output = "discard"
)

// Validate rejects unknown outputs.
func (o Output) Validate() error {
	switch o {
	case OutputStdout, OutputStderr, OutputDiscard:
		return nil
	}
	return fmt.Errorf("logging: unknown output %q", string(o))
}
