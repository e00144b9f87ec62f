// Package spec holds the YAML shape of recipe files.
package spec

import "gopkg.in/yaml.v3"

type StdoutSink struct {
	PrintCounter  bool `yaml:"print_counter"`
	PrintValue    bool `yaml:"print_value"`
	ValueMaxBytes int  `yaml:"value_max_bytes"`
	DelayMS       int  `yaml:"delay_ms"`
}

type KafkaSink struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"` // 0,1,-1
}

type sinkConfigs struct {
	Stdout StdoutSink `yaml:"stdout"`
	Kafka  KafkaSink  `yaml:"kafka"`
}

type RetryPolicy struct {
	Attempts  int `yaml:"attempts"`
	BackoffMS int `yaml:"backoff_ms"`
}

type StepSpec struct {
	Name        string      `yaml:"name"`
	Op          string      `yaml:"op"`
	Type        string      `yaml:"type"`    // "inproc" (default) or "grpc"
	Address     string      `yaml:"address"` // grpc only, e.g. "localhost:7070"
	TimeoutMS   int         `yaml:"timeout_ms"`
	RetryPolicy RetryPolicy `yaml:"retry_policy"`
	// Params is decoded against the configured defaults, see config.StepParams.
	Params yaml.Node `yaml:"params"`
}

type Source struct {
	Kind   string `yaml:"kind"`
	Driver string `yaml:"driver"`
	Config string `yaml:"config"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Optional; without a source the recipe is only applied on demand.
	Source Source `yaml:"source"`

	// Ordered list of operations applied to every value.
	Steps []StepSpec `yaml:"steps"`

	Sinks       []string    `yaml:"sinks"`
	SinkConfigs sinkConfigs `yaml:"sink_configs"`
}
