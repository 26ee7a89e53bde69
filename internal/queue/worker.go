package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/mailer"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const attemptTimeout = 10 * time.Second

// fetcher is the slice of *kafka.Reader the worker needs. Fetch and
// commit are split so a job is committed only after it has run to
// completion (success or exhausted retries).
type fetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Worker struct {
	reader   fetcher
	mailer   mailer.Mailer
	log      *zap.SugaredLogger
	attempts int
	backoff  time.Duration
	sleep    func(ctx context.Context, d time.Duration)
}

func NewWorker(reader fetcher, m mailer.Mailer, attempts int, backoff time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{
		reader:   reader,
		mailer:   m,
		log:      log,
		attempts: attempts,
		backoff:  backoff,
		sleep:    sleepCtx,
	}
}

// sleepCtx waits for d or until ctx is cancelled, whichever is first.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Run consumes jobs until ctx is cancelled. Each message is processed
// to completion before it is committed; a commit failure only risks
// duplicate delivery, which the at-least-once contract tolerates.
func (w *Worker) Run(ctx context.Context) error {
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Errorf("fetch email job: %v", err)
			w.sleep(ctx, time.Second)
			continue
		}

		w.handle(ctx, msg.Value)

		if err := w.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Errorf("commit email job: %v", err)
		}
	}
}

// handle runs the delivery with bounded retries and fixed backoff. A
// job that exhausts its attempts is logged as failed and dropped.
func (w *Worker) handle(ctx context.Context, payload []byte) {
	var job models.EmailJob
	if err := json.Unmarshal(payload, &job); err != nil {
		w.log.Errorf("discard malformed email job: %v", err)
		return
	}

	for attempt := 1; attempt <= w.attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := w.mailer.Send(attemptCtx, job.To, job.Subject, job.Body)
		cancel()
		if err == nil {
			w.log.Infof("email delivered to=%s subject=%q attempt=%d", job.To, job.Subject, attempt)
			return
		}
		w.log.Warnf("email attempt %d/%d to=%s failed: %v", attempt, w.attempts, job.To, err)
		if attempt < w.attempts {
			w.sleep(ctx, w.backoff)
			if ctx.Err() != nil {
				w.log.Infof("shutdown during backoff, leaving job to=%s for redelivery", job.To)
				return
			}
		}
	}
	w.log.Errorf("email job failed permanently to=%s subject=%q after %d attempts", job.To, job.Subject, w.attempts)
}

// Pool runs n workers, each with its own reader in the same consumer
// group, so any in-flight job belongs to exactly one worker.
type Pool struct {
	workers []*Worker
	readers []*kafka.Reader
}

func NewPool(brokers []string, topic, group string, n int, m mailer.Mailer, attempts int, backoff time.Duration, log *zap.SugaredLogger) *Pool {
	p := &Pool{}
	for i := 0; i < n; i++ {
		r := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  group,
			MinBytes: 1,
			MaxBytes: 10e6,
		})
		p.readers = append(p.readers, r)
		p.workers = append(p.workers, NewWorker(r, m, attempts, backoff, log))
	}
	return p
}

func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			_ = w.Run(ctx)
		}(w)
	}
	wg.Wait()
}

func (p *Pool) Close() {
	for _, r := range p.readers {
		_ = r.Close()
	}
}
