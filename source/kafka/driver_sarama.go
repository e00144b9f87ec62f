package kafka

import (
	"context"
	"errors"

	"github.com/IBM/sarama"

	"prepkit/internal/logging"
	"prepkit/internal/record"
)

type SaramaDriver struct {
	cfg   Config
	cl    sarama.Client
	group sarama.ConsumerGroup
}

func init() { Register("sarama", func() Adapter { return &SaramaDriver{} }) }

func (d *SaramaDriver) Configure(config Config) error {
	d.cfg = config
	sc, err := saramaConfig(config)
	if err != nil {
		return err
	}
	if d.cl, err = sarama.NewClient(config.Brokers, sc); err != nil {
		return err
	}
	d.group, err = sarama.NewConsumerGroupFromClient(config.GroupID, d.cl)
	return err
}

func saramaConfig(config Config) (*sarama.Config, error) {
	ver, err := sarama.ParseKafkaVersion(config.Version)
	if err != nil {
		return nil, err
	}
	sc := sarama.NewConfig()
	sc.Version = ver
	sc.ClientID = "prepkit"
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.AutoCommit.Enable = true
	sc.Consumer.Offsets.AutoCommit.Interval = config.Checkpoint.CommitInt
	if config.TLSEn {
		sc.Net.TLS.Enable = true
	}
	if config.SASLUser != "" {
		sc.Net.SASL.Enable = true
		sc.Net.SASL.User, sc.Net.SASL.Password = config.SASLUser, config.SASLPass
	}
	switch config.StartFrom {
	case "oldest":
		sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	default:
		sc.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	return sc, nil
}

func (d *SaramaDriver) Run(ctx context.Context, emit EmitFunc) error {
	if d.group == nil {
		return errors.New("sarama-driver: not configured")
	}
	go func() {
		for err := range d.group.Errors() {
			logging.L().Warn("sarama-driver: consumer error", "err", err)
		}
	}()
	handler := &groupHandler{emit: emit}

	for {
		if err := d.group.Consume(ctx, d.cfg.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (d *SaramaDriver) Close() error {
	var errs []error
	if d.group != nil {
		errs = append(errs, d.group.Close())
	}
	if d.cl != nil && !d.cl.Closed() {
		errs = append(errs, d.cl.Close())
	}
	return errors.Join(errs...)
}

type groupHandler struct {
	emit EmitFunc
}

func (*groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (*groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim hands records to emit one at a time and marks each offset
// after emit succeeds.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.emit(ctx, toRecord(msg)); err != nil {
				logging.L().Error("sarama-driver: emit failed; leaving offset unmarked",
					"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "err", err)
				return err
			}
			sess.MarkMessage(msg, "")
		}
	}
}

func toRecord(msg *sarama.ConsumerMessage) record.Record {
	return record.Record{
		Key:        msg.Key,
		Value:      msg.Value,
		Headers:    toHeaderMap(msg.Headers),
		Timestamp:  msg.Timestamp,
		Checkpoint: record.Checkpoint{Topic: msg.Topic, Partition: msg.Partition, Offset: msg.Offset},
	}
}

func toHeaderMap(src []*sarama.RecordHeader) map[string][]byte {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string][]byte, len(src))
	for _, h := range src {
		out[string(h.Key)] = h.Value
	}
	return out
}
