package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"prepkit/internal/literal"
	"prepkit/internal/ops"
	"prepkit/internal/spec"
)

const SupportedSchema = "v1"

// LoadRecipe parses a recipe YAML, validates schema_version, and returns the
// parsed recipe and an absolute path to the source config (if set).
func LoadRecipe(path string) (spec.File, string, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, "", err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, "", fmt.Errorf("recipe %s: %w", path, err)
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, "", fmt.Errorf("recipe schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	if len(cfg.Steps) == 0 {
		return cfg, "", fmt.Errorf("recipe %s: no steps", path)
	}
	confPath := cfg.Source.Config
	if confPath != "" && !filepath.IsAbs(confPath) {
		confPath = filepath.Join(filepath.Dir(path), confPath)
	}
	return cfg, confPath, nil
}

// StepParams overlays the step's params block on defaults. The fill value is
// read as a literal so `fill: None` and `fill: 0` keep their literal types.
// defaults is never written to.
func StepParams(step spec.StepSpec, defaults ops.Params) (ops.Params, error) {
	p := defaults.Clone()
	n := &step.Params
	if n.Kind == 0 {
		return p, nil
	}
	if n.Kind != yaml.MappingNode {
		return p, fmt.Errorf("step %s: params must be a mapping", step.Name)
	}
	if err := n.Decode(&p); err != nil {
		return p, fmt.Errorf("step %s: params: %w", step.Name, err)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "fill" {
			continue
		}
		v, err := literal.FromNode(n.Content[i+1])
		if err != nil {
			return p, fmt.Errorf("step %s: params.fill: %w", step.Name, err)
		}
		p.Fill = v
	}
	return p, nil
}
