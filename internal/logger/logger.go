package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance
var Log = slog.Default()

// Options selects the log level, console format and optional log file.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string
	Output io.Writer // console destination, defaults to stderr
}

// Init builds the global logger. Console output goes to stderr so command
// output on stdout stays machine-readable; when File is set, records are
// also written as JSON to a size-rotated file.
func Init(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var handlers []slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	} else {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		}
		// The file keeps info and above even when the console is quieter.
		handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level: min(level, slog.LevelInfo),
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return Log
}

// ParseLevel maps a level name to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
