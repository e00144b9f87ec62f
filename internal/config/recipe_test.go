package config

import (
	"os"
	"path/filepath"
	"testing"

	"prepkit/internal/ops"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadRecipe_ResolvesRelativeSourceConfigAndSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", `schema_version: v1
source:
  kind: kafka
  driver: sarama
  config: kafka_source.yml
steps:
  - name: drop
    op: clean.remove-missing
sinks: [stdout]
`)
	writeFile(t, dir, "kafka_source.yml", "schema_version: v1\n")

	cfg, abs, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("LoadRecipe: %v", err)
	}
	if cfg.SchemaVersion != SupportedSchema {
		t.Fatalf("want schema %s, got %s", SupportedSchema, cfg.SchemaVersion)
	}
	if abs == "" || !filepath.IsAbs(abs) {
		t.Fatalf("want absolute kafka config path, got %q", abs)
	}
	if len(cfg.Steps) != 1 || cfg.Steps[0].Op != "clean.remove-missing" {
		t.Fatalf("unexpected steps: %+v", cfg.Steps)
	}
}

func TestLoadRecipe_InvalidSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", `schema_version: v999
steps: [{name: a, op: struct.unique}]
`)
	if _, _, err := LoadRecipe(path); err == nil {
		t.Fatal("expected error for invalid schema_version")
	}
}

func TestLoadRecipe_NoSteps(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", "schema_version: v1\nsteps: []\n")
	if _, _, err := LoadRecipe(path); err == nil {
		t.Fatal("expected error for a recipe without steps")
	}
}

func TestStepParams_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", `steps:
  - name: scale
    op: numeric.normalize
    params: {new_max: 10, seed: 42, stopwords: [a, the], fill: None}
  - name: plain
    op: struct.unique
`)
	cfg, _, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("LoadRecipe: %v", err)
	}

	p, err := StepParams(cfg.Steps[0], ops.DefaultParams())
	if err != nil {
		t.Fatalf("StepParams: %v", err)
	}
	if p.NewMin != 0 || p.NewMax != 10 {
		t.Fatalf("want range [0, 10], got [%v, %v]", p.NewMin, p.NewMax)
	}
	if p.Seed == nil || *p.Seed != 42 {
		t.Fatalf("want seed 42, got %v", p.Seed)
	}
	if len(p.Stopwords) != 2 || p.Stopwords[1] != "the" {
		t.Fatalf("unexpected stopwords: %v", p.Stopwords)
	}
	if p.Fill != nil {
		t.Fatalf("want nil fill, got %#v", p.Fill)
	}

	plain, err := StepParams(cfg.Steps[1], ops.DefaultParams())
	if err != nil {
		t.Fatalf("StepParams: %v", err)
	}
	if plain.Fill != int64(0) || plain.ClipMax != 1 {
		t.Fatalf("want defaults, got %+v", plain)
	}
}

func TestStepParams_RejectsNonMapping(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", "steps:\n  - {name: a, op: struct.unique, params: [1]}\n")
	cfg, _, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("LoadRecipe: %v", err)
	}
	if _, err := StepParams(cfg.Steps[0], ops.DefaultParams()); err == nil {
		t.Fatal("expected error for list params")
	}
}

func TestStepParams_DoesNotShareDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "recipe.yml", `steps:
  - name: a
    op: struct.shuffle
  - name: b
    op: struct.shuffle
    params: {seed: 42, stopwords: [x]}
`)
	cfg, _, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("LoadRecipe: %v", err)
	}
	seed := int64(7)
	defaults := ops.DefaultParams()
	defaults.Seed = &seed
	defaults.Stopwords = []string{"the"}

	a, err := StepParams(cfg.Steps[0], defaults)
	if err != nil {
		t.Fatalf("StepParams(a): %v", err)
	}
	b, err := StepParams(cfg.Steps[1], defaults)
	if err != nil {
		t.Fatalf("StepParams(b): %v", err)
	}
	if *a.Seed != 7 || *b.Seed != 42 || *defaults.Seed != 7 {
		t.Fatalf("seeds: a=%d b=%d defaults=%d, want 7 42 7", *a.Seed, *b.Seed, *defaults.Seed)
	}
	if a.Stopwords[0] != "the" || b.Stopwords[0] != "x" || defaults.Stopwords[0] != "the" {
		t.Fatalf("stopwords: a=%v b=%v defaults=%v", a.Stopwords, b.Stopwords, defaults.Stopwords)
	}
}
