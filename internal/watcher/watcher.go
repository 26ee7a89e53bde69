// Package watcher keeps the aggregate blog cache coherent with the
// store. It holds a change stream open on the blogs collection for the
// lifetime of the process and deletes the listing key on every write,
// no matter which process performed it. A dropped stream is logged and
// reopened; it must never die silently, or reads go permanently stale.
package watcher

import (
	"context"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/cache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// changeStream is the slice of *mongo.ChangeStream the watcher uses.
type changeStream interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

type openStreamFunc func(ctx context.Context) (changeStream, error)

type Watcher struct {
	open       openStreamFunc
	cache      cache.Store
	log        *zap.SugaredLogger
	retryDelay time.Duration
}

// New builds a watcher over the given blogs collection.
func New(coll *mongo.Collection, c cache.Store, log *zap.SugaredLogger) *Watcher {
	open := func(ctx context.Context) (changeStream, error) {
		return coll.Watch(ctx, mongo.Pipeline{})
	}
	return newWatcher(open, c, log)
}

func newWatcher(open openStreamFunc, c cache.Store, log *zap.SugaredLogger) *Watcher {
	return &Watcher{
		open:       open,
		cache:      c,
		log:        log,
		retryDelay: 5 * time.Second,
	}
}

// Run subscribes and consumes until ctx is cancelled, resubscribing
// after every stream failure.
func (w *Watcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		stream, err := w.open(ctx)
		if err != nil {
			w.log.Errorf("open blog change stream: %v", err)
			select {
			case <-time.After(w.retryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}
		w.log.Info("watching blog collection for changes")
		w.consume(ctx, stream)

		// A stream that opens and dies at once must not reconnect in a
		// tight loop.
		select {
		case <-time.After(w.retryDelay):
		case <-ctx.Done():
			return
		}
	}
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
}

func (w *Watcher) consume(ctx context.Context, stream changeStream) {
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			w.log.Errorf("decode change event: %v", err)
			continue
		}
		w.apply(ctx, ev)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		w.log.Errorf("blog change stream closed: %v", err)
	}
}

// apply invalidates the aggregate listing for every recognized write.
// There is no payload filtering and no per-post key handling here.
func (w *Watcher) apply(ctx context.Context, ev changeEvent) {
	switch ev.OperationType {
	case "insert", "update", "delete", "replace":
		if err := w.cache.Del(ctx, cache.KeyAllBlogs); err != nil {
			w.log.Warnf("invalidate %s: %v", cache.KeyAllBlogs, err)
		}
	}
}
