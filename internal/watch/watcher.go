// Package watch reports changes to a storage slot made by other processes,
// such as the CLI or the API writing the same database the TUI has open.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/taskboard/internal/storage"
)

var ErrInvalidInterval = errors.New("watch: invalid poll interval")

type Event struct {
	Key string
	At  time.Time
}

type fingerprint [sha256.Size]byte

type Watcher struct {
	backend  storage.Backend
	key      string
	interval time.Duration

	mu      sync.Mutex
	last    fingerprint
	out     chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func New(b storage.Backend, key string, interval time.Duration, bufferSize int) (*Watcher, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Watcher{
		backend:  b,
		key:      key,
		interval: interval,
		out:      make(chan Event, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// C delivers one event per detected change. It is closed by Stop.
func (w *Watcher) C() <-chan Event {
	return w.out
}

// Start records the current slot contents as the baseline and begins polling.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	w.last = w.fingerprint(ctx)
	go w.loop(ctx)
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

// Touch adopts the current slot contents as the baseline without emitting,
// so writes made by this process are not reported back to it.
func (w *Watcher) Touch(ctx context.Context) {
	fp := w.fingerprint(ctx)
	w.mu.Lock()
	w.last = fp
	w.mu.Unlock()
}

func (w *Watcher) Dropped() uint64 {
	return atomic.LoadUint64(&w.dropped)
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.out)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.changed(ctx) {
				continue
			}
			select {
			case w.out <- Event{Key: w.key, At: time.Now().UTC()}:
			default:
				atomic.AddUint64(&w.dropped, 1)
			}
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) changed(ctx context.Context) bool {
	fp := w.fingerprint(ctx)
	w.mu.Lock()
	defer w.mu.Unlock()
	if fp == w.last {
		return false
	}
	w.last = fp
	return true
}

// fingerprint hashes the slot. A missing or unreadable slot hashes as empty.
func (w *Watcher) fingerprint(ctx context.Context) fingerprint {
	raw, err := w.backend.Get(ctx, w.key)
	if err != nil {
		raw = nil
	}
	return sha256.Sum256(raw)
}
