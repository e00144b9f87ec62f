package kafka

import (
	"context"

	"prepkit/internal/record"
)

// EmitFunc handles one record. The record's offset is marked once EmitFunc
// returns nil; a non-nil error ends the consumer session without marking.
type EmitFunc func(context.Context, record.Record) error

type Adapter interface {
	Configure(Config) error
	Run(context.Context, EmitFunc) error
	Close() error
}
