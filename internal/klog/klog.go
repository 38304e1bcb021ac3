// Package klog is the kernel's ambient structured logger: discard by
// default, enable with Init, and log through the package-level helpers.
package klog

import (
	"io"
	"log/slog"
	"os"
)

// L is the process-wide logger. It discards everything until Init is
// called, so library code can log unconditionally without a host opting
// in first.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	Level   slog.Level
	JSON    bool
	Output  io.Writer // default os.Stderr
}

// Init configures L. Call from main() before running any VM scope.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(out, handlerOpts))
		return
	}
	L = slog.New(slog.NewTextHandler(out, handlerOpts))
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

// With returns a logger scoped to args, for call sites that want a
// sub-logger instead of per-call key-value pairs (e.g. one Scope's
// symbol attached to every entry it produces).
func With(args ...any) *slog.Logger { return L.With(args...) }
