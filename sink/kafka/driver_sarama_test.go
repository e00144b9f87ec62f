package kafka

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"prepkit/internal/record"
)

func TestDriver_PushProducesTransformedValue(t *testing.T) {
	cfg := Config{Brokers: []string{"b:9092"}, Topic: "out", Acks: 1}
	p := mocks.NewSyncProducer(t, producerConfig(cfg))
	p.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		if m.Topic != "out" {
			return errors.New("wrong topic " + m.Topic)
		}
		v, _ := m.Value.Encode()
		if string(v) != "[1, 2]" {
			return errors.New("wrong value " + string(v))
		}
		if len(m.Headers) != 1 || string(m.Headers[0].Key) != "h" {
			return errors.New("headers not forwarded")
		}
		return nil
	})

	d := &driver{cfg: cfg, p: p}
	r := record.Record{Key: []byte("k"), Value: []byte("[1, 2]"), Headers: map[string][]byte{"h": []byte("v")}}
	if err := d.Push(r); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestDriver_PushReturnsProduceError(t *testing.T) {
	cfg := Config{Brokers: []string{"b:9092"}, Topic: "out"}
	p := mocks.NewSyncProducer(t, producerConfig(cfg))
	p.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	d := &driver{cfg: cfg, p: p}
	err := d.Push(record.Record{Value: []byte("[1]")})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("want ErrOutOfBrokers, got %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDriver_ConfigureValidates(t *testing.T) {
	d := &driver{}
	if err := d.Configure("nope"); err == nil {
		t.Fatal("expected error for non-Config value")
	}
	if err := d.Configure(Config{Topic: "out"}); err == nil {
		t.Fatal("expected error without brokers")
	}
	if err := d.Push(record.Record{}); err == nil {
		t.Fatal("expected error pushing to an unconfigured sink")
	}
}
