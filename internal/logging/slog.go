package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// SlogAdapter implements Logger on top of log/slog. Combined with a tint
// handler it gives colored, human-readable console output.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps an existing slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// NewConsoleLogger returns a tint-backed console logger writing to w.
func NewConsoleLogger(w io.Writer, level string, noColor bool) (*SlogAdapter, error) {
	lvl, err := parseSlogLevel(level)
	if err != nil {
		return nil, err
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	})
	return NewSlogAdapter(slog.New(h)), nil
}

func parseSlogLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	name := strings.TrimSpace(level)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// Info logs at info level.
func (s *SlogAdapter) Info(msg string, fields ...Field) {
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, toAttrs(fields)...)
}

// Error logs at error level with err attached.
func (s *SlogAdapter) Error(msg string, err error, fields ...Field) {
	attrs := toAttrs(fields)
	if err != nil {
		attrs = append(attrs, tint.Err(err))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// Debug logs at debug level.
func (s *SlogAdapter) Debug(msg string, fields ...Field) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, toAttrs(fields)...)
}

// Printf logs a formatted message at info level.
func (s *SlogAdapter) Printf(format string, args ...any) {
	s.logger.Info(fmt.Sprintf(format, args...))
}

// Println logs its arguments at info level.
func (s *SlogAdapter) Println(args ...any) {
	s.logger.Info(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}
