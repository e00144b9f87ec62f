// Package record holds the unit of data that flows from a source, through
// recipe steps, to sinks.
package record

import (
	"fmt"
	"time"
)

// Checkpoint locates a record in its source so the source can commit it.
type Checkpoint struct {
	Topic     string
	Partition int32
	Offset    int64
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("%s[%d]@%d", c.Topic, c.Partition, c.Offset)
}

type Record struct {
	Key        []byte
	Value      []byte
	Headers    map[string][]byte
	Timestamp  time.Time
	Checkpoint Checkpoint
}

// WithValue returns a copy of r carrying value. Headers are shared.
func (r Record) WithValue(value []byte) Record {
	r.Value = value
	return r
}
