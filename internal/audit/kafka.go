package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaEmitterConfig contains configurable parameters for the Kafka emitter.
type KafkaEmitterConfig struct {
	// Brokers is the list of Kafka broker addresses (host:port).
	Brokers []string

	// Topic is the topic audit events are written to.
	Topic string

	// MaxAttempts is how many times Emit retries on transient error.
	// Defaults to 3 if <= 0.
	MaxAttempts int

	// WriteTimeout is the per-attempt timeout for Write operations.
	// Defaults to 10s if zero.
	WriteTimeout time.Duration

	// Balancer decides partition selection. If nil, a Hash balancer is used
	// so events with the same key keep their relative order.
	Balancer kafka.Balancer
}

// KafkaEmitter publishes audit events through a kafka-go Writer with simple
// produce-with-retries behavior.
type KafkaEmitter struct {
	writer      *kafka.Writer
	maxAttempts int
}

func NewKafkaEmitter(cfg KafkaEmitterConfig) (*KafkaEmitter, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: at least one broker required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.Balancer == nil {
		cfg.Balancer = &kafka.Hash{}
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		Balancer:     cfg.Balancer,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		Async:        false,
	})

	return &KafkaEmitter{writer: w, maxAttempts: cfg.MaxAttempts}, nil
}

func (e *KafkaEmitter) Emit(ctx context.Context, ev Event) error {
	ev = fill(ev)
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	var key []byte
	if ev.Key != "" {
		key = []byte(ev.Key)
	}

	var lastErr error
	backoff := 100 * time.Millisecond
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		msg := kafka.Message{
			Key:   key,
			Value: value,
			Time:  ev.Ts,
		}
		ctxAttempt, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := e.writer.WriteMessages(ctxAttempt, msg)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt == e.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("emit aborted after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff *= 2
		}
	}
	return fmt.Errorf("emit failed after %d attempts: %w", e.maxAttempts, lastErr)
}

func (e *KafkaEmitter) Close() error {
	if e == nil || e.writer == nil {
		return nil
	}
	return e.writer.Close()
}
