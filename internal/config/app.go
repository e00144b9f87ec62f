package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"prepkit/internal/literal"
	"prepkit/internal/ops"
)

const envPrefix = "PREPKIT__"

type Log struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type Server struct {
	GRPCPort    int    `koanf:"grpc_port"`
	MetricsPort int    `koanf:"metrics_port"`
	Recipe      string `koanf:"recipe"`
}

type Remote struct {
	// Address of a prepkit gRPC server; empty means apply in process.
	Address   string `koanf:"address"`
	TimeoutMS int    `koanf:"timeout_ms"`
}

type Config struct {
	Log      Log        `koanf:"log"`
	Defaults ops.Params `koanf:"defaults"`
	Server   Server     `koanf:"server"`
	Remote   Remote     `koanf:"remote"`
}

func Default() Config {
	return Config{
		Log:      Log{Level: "warn"},
		Defaults: ops.DefaultParams(),
		Server:   Server{GRPCPort: 7070, MetricsPort: 9100},
		Remote:   Remote{TimeoutMS: 5000},
	}
}

// Load merges the YAML file at path (optional, may be missing) with
// env-vars (prefix `PREPKIT__`, delimiter `__`, e.g.
// PREPKIT__SERVER__GRPC_PORT=7071) on top of Default().
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	_ = k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	cfg := Default()
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	})
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	// Env-vars deliver the fill value as text.
	if cfg.Defaults.Fill, err = literal.Normalize(cfg.Defaults.Fill, true); err != nil {
		return cfg, fmt.Errorf("config: defaults.fill: %w", err)
	}
	return cfg, nil
}
