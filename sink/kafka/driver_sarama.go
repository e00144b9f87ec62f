package kafka

import (
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"

	"prepkit/internal/logging"
	"prepkit/internal/record"
	"prepkit/sink"
)

type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"` // 0,1,-1
}

// driver produces synchronously: Push returns only once the broker has
// acknowledged the message, so the source marks an offset after the write
// is durable.
type driver struct {
	cfg Config
	p   sarama.SyncProducer

	once     sync.Once
	closeErr error
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return errors.New("kafka-sink: brokers and topic are required")
	}
	p, err := sarama.NewSyncProducer(cfg.Brokers, producerConfig(cfg))
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	d.cfg, d.p = cfg, p
	return nil
}

func producerConfig(cfg Config) *sarama.Config {
	sc := sarama.NewConfig()
	sc.ClientID = "prepkit"
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Errors = true
	sc.Producer.Return.Successes = true
	return sc
}

func (d *driver) Push(r record.Record) error {
	if d.p == nil {
		return errors.New("kafka-sink: not configured")
	}
	msg := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Value: sarama.ByteEncoder(r.Value),
	}
	if r.Key != nil {
		msg.Key = sarama.ByteEncoder(r.Key)
	}
	for k, v := range r.Headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: v})
	}
	if _, _, err := d.p.SendMessage(msg); err != nil {
		logging.L().Error("kafka-sink: produce failed", "topic", d.cfg.Topic, "checkpoint", r.Checkpoint.String(), "err", err)
		return fmt.Errorf("kafka-sink: produce to %s: %w", d.cfg.Topic, err)
	}
	return nil
}

func (d *driver) Close() error {
	d.once.Do(func() {
		if d.p != nil {
			d.closeErr = d.p.Close()
		}
	})
	return d.closeErr
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
