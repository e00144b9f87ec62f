package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-softwarelab/common/pkg/slogx"
)

type Options struct {
	Level string
	JSON  bool
	// Output defaults to stderr; stdout is reserved for command results.
	Output io.Writer
}

var def atomic.Value

func init() {
	def.Store(build(Options{}))
}

func Configure(opts Options) {
	def.Store(build(opts))
}

func build(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	b := slogx.NewBuilder().WithSlogLevel(parseLevel(opts.Level)).WritingTo(out)
	if opts.JSON {
		return b.WithJSONFormat().Logger()
	}
	return b.WithTextFormat().Logger()
}

// parseLevel accepts slog level names with optional offsets ("debug",
// "WARN", "info+2"); anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// InitFromEnv configures the logger from PREPKIT_LOG_LEVEL and
// PREPKIT_LOG_JSON for binaries that carry no config file.
func InitFromEnv() {
	asJSON, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("PREPKIT_LOG_JSON")))
	Configure(Options{Level: os.Getenv("PREPKIT_LOG_LEVEL"), JSON: asJSON})
}
