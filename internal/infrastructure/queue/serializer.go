package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrStopped is returned by Do once the serializer's workers have exited.
var ErrStopped = errors.New("serializer stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(ctx context.Context) error
	done chan error
}

// Serializer routes read-modify-write operations to a fixed set of workers
// using consistent hashing on the storage key, so two updates of the same
// key never interleave.
type Serializer struct {
	workers []chan job
	wg      sync.WaitGroup
	stopped chan struct{}
	log     zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Do reports ErrStopped once every worker has exited.
func (s *Serializer) Start(ctx context.Context) {
	s.wg.Add(len(s.workers))
	for i, ch := range s.workers {
		go func() {
			defer s.wg.Done()
			s.runWorker(ctx, i, ch)
		}()
	}
	go func() {
		s.wg.Wait()
		close(s.stopped)
	}()
}

// Do runs fn on the worker owning key and waits for its result. fn must not
// call Do for a key on the same worker.
//
// ctx only bounds the wait for a free worker. Once fn has started it runs to
// completion and its result is what Do returns, so a reported failure always
// means nothing was committed.
func (s *Serializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}

	select {
	case s.workers[s.shardIndex(key)] <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-s.stopped:
		// workers are gone; a job that ran has already left its result
		select {
		case err := <-j.done:
			return err
		default:
			return ErrStopped
		}
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			err := j.fn(context.WithoutCancel(j.ctx))
			if err != nil {
				s.log.Debug().Err(err).
					Str("key", j.key).
					Int("worker_id", id).
					Msg("serialized update failed")
			}
			j.done <- err
		}
	}
}
