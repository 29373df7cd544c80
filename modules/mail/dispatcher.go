package mail

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const sendTimeout = 30 * time.Second

// Dispatcher delivers emails asynchronously so authentication flows never
// block on, or fail because of, the email provider. Failed sends are logged
// and counted but never surfaced to the caller.
type Dispatcher struct {
	mailer *Mailer
	log    *slog.Logger
	jobs   chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	dropped atomic.Int64
	failed  atomic.Int64
}

type job struct {
	kind string
	send func(context.Context) error
}

// NewDispatcher starts the background worker. queueSize bounds the number
// of pending emails; when the queue is full new emails are dropped.
func NewDispatcher(mailer *Mailer, log *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		jobs:   make(chan job, queueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// VerificationEmail enqueues the email verification code message.
func (d *Dispatcher) VerificationEmail(email, code string) {
	d.enqueue("email-verification", func(ctx context.Context) error {
		return d.mailer.SendVerificationEmail(ctx, email, code)
	})
}

// PasswordResetEmail enqueues the password reset link message.
func (d *Dispatcher) PasswordResetEmail(email, token string) {
	d.enqueue("password-reset", func(ctx context.Context) error {
		return d.mailer.SendPasswordResetEmail(ctx, email, token)
	})
}

// PasswordResetSuccessEmail enqueues the password changed notice.
func (d *Dispatcher) PasswordResetSuccessEmail(email string) {
	d.enqueue("password-reset-success", func(ctx context.Context) error {
		return d.mailer.SendPasswordResetSuccessEmail(ctx, email)
	})
}

// Dropped returns how many emails were discarded because the queue was full
// or the dispatcher was closed.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

// Failed returns how many sends returned an error.
func (d *Dispatcher) Failed() int64 { return d.failed.Load() }

// Close stops accepting new emails and waits for the queued ones to drain.
// Safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) enqueue(kind string, send func(context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		d.log.Warn("email dropped, dispatcher closed", "kind", kind)
		return
	}

	select {
	case d.jobs <- job{kind: kind, send: send}:
	default:
		d.dropped.Add(1)
		d.log.Warn("email dropped, queue full", "kind", kind)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := j.send(ctx); err != nil {
			d.failed.Add(1)
			d.log.Error("email send failed", "kind", j.kind, "error", err)
		}
		cancel()
	}
}
