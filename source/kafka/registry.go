package kafka

import "fmt"

// Factory builds an Adapter (e.g., SaramaDriver).
type Factory func() Adapter

var registry = map[string]Factory{}

// Register is called from each driver's init().
func Register(name string, f Factory) {
	registry[name] = f
}

// NewAdapter returns a driver by name ("sarama").
func NewAdapter(name string) (Adapter, error) {
	if name == "" {
		name = "sarama"
	}
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("kafka: unsupported driver %q", name)
}
