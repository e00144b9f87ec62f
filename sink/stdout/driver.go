package stdout

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"prepkit/internal/record"
	"prepkit/sink"
)

type Config struct {
	DelayMS       int  `yaml:"delay_ms"`        // artificial per-record delay
	PrintCounter  bool `yaml:"print_counter"`   // prepend seq# and checkpoint
	PrintValue    bool `yaml:"print_value"`     // print the transformed value
	ValueMaxBytes int  `yaml:"value_max_bytes"` // 0 = no truncation

	// Out defaults to os.Stdout.
	Out io.Writer `yaml:"-"`
}

type driver struct {
	cfg Config

	mu  sync.Mutex // serializes writes
	seq uint64
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	d.cfg = c
	return nil
}

func (d *driver) Push(r record.Record) error {
	if d.cfg.DelayMS > 0 {
		time.Sleep(time.Duration(d.cfg.DelayMS) * time.Millisecond)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++

	var err error
	switch {
	case d.cfg.PrintCounter && d.cfg.PrintValue:
		_, err = fmt.Fprintf(d.cfg.Out, "[sink %06d] %s %s\n", d.seq, r.Checkpoint, d.value(r.Value))
	case d.cfg.PrintCounter:
		_, err = fmt.Fprintf(d.cfg.Out, "[sink %06d] %s\n", d.seq, r.Checkpoint)
	case d.cfg.PrintValue:
		_, err = fmt.Fprintf(d.cfg.Out, "%s\n", d.value(r.Value))
	}
	return err
}

func (d *driver) value(v []byte) []byte {
	if n := d.cfg.ValueMaxBytes; n > 0 && len(v) > n {
		return append(v[:n:n], "..."...)
	}
	return v
}

func (d *driver) Close() error { return nil }

func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
