package sink

import (
	"fmt"

	"prepkit/internal/record"
)

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error      // driver-specific config struct
	Push(record.Record) error // consume one transformed record
	Close() error             // idempotent
}

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
