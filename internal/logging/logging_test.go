package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"info+2":  slog.LevelInfo + 2,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigure_JSONAndLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Options{}) })

	var buf bytes.Buffer
	Configure(Options{Level: "warn", JSON: true, Output: &buf})
	L().Info("hidden")
	L().Warn("shown", "op", "numeric.normalize")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["op"] != "numeric.normalize" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestInitFromEnv(t *testing.T) {
	t.Cleanup(func() { Configure(Options{}) })
	t.Setenv("PREPKIT_LOG_LEVEL", "debug")
	t.Setenv("PREPKIT_LOG_JSON", "true")
	InitFromEnv()
	if !L().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug level not enabled from env")
	}
}
