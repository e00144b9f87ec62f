package kafka

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "PREPKIT_KAFKA__"
	schemaVersion = "v1"
)

type CheckpointCfg struct {
	// CommitInt is the offset auto-commit interval, e.g. "5s".
	CommitInt time.Duration `koanf:"commit_interval"`
}

type Config struct {
	SchemaVersion string   `koanf:"schema_version"`
	Brokers       []string `koanf:"brokers"`
	Topics        []string `koanf:"topics"`
	GroupID       string   `koanf:"group_id"`
	// StartFrom is oldest or newest.
	StartFrom string `koanf:"start_from"`
	Version   string `koanf:"version"`
	TLSEn     bool   `koanf:"tls_enabled"`
	SASLUser  string `koanf:"sasl_user"`
	SASLPass  string `koanf:"sasl_pass"`

	Checkpoint CheckpointCfg `koanf:"checkpoint"`
}

func defaultConfig() Config {
	return Config{
		GroupID:    "prepkit",
		StartFrom:  "newest",
		Version:    "2.8.0",
		Checkpoint: CheckpointCfg{CommitInt: 5 * time.Second},
	}
}

// LoadConfig reads the source YAML at path, then applies PREPKIT_KAFKA__*
// env overrides. List values given through env are comma separated:
// PREPKIT_KAFKA__BROKERS=k1:9092,k2:9092.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("kafka: %s: %w", path, err)
		}
	}
	_ = k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	cfg := defaultConfig()
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
		return cfg, fmt.Errorf("kafka: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.SchemaVersion != "" && c.SchemaVersion != schemaVersion:
		return fmt.Errorf("kafka: schema_version %q not supported (want %s)", c.SchemaVersion, schemaVersion)
	case len(c.Brokers) == 0:
		return errors.New("kafka: no brokers configured")
	case len(c.Topics) == 0:
		return errors.New("kafka: no topics configured")
	case c.StartFrom != "oldest" && c.StartFrom != "newest":
		return fmt.Errorf("kafka: start_from %q (want oldest or newest)", c.StartFrom)
	case c.Checkpoint.CommitInt <= 0:
		return errors.New("kafka: checkpoint.commit_interval must be positive")
	}
	return nil
}
