// Package queue is the durable email job queue. Jobs are JSON messages
// on a kafka topic; a worker pool consumes them in one consumer group
// with commit-after-completion, giving at-least-once delivery.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// Enqueuer is what the service layer sees: submit a job and move on.
type Enqueuer interface {
	Enqueue(ctx context.Context, job models.EmailJob) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: w}
}

func (p *Producer) Enqueue(ctx context.Context, job models.EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}
	msg := kafka.Message{Key: []byte(job.To), Value: data, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("enqueue email job: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if c, ok := p.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
