// Package ratelimit bounds outbound generation calls to a sliding window
// quota. The limiter is a pure admission gate: it never fails a request,
// callers wait for a slot instead.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter admits at most maxRequests calls per trailing window. It is safe
// for concurrent use by multiple in-flight requests.
type Limiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	admissions  []time.Time
}

// Status is a snapshot of the limiter for monitoring endpoints.
type Status struct {
	RequestsInWindow int `json:"requestsInWindow"`
	MaxRequests      int `json:"maxRequests"`
	Available        int `json:"available"`
}

// New creates a limiter admitting maxRequests calls per window.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
	}
}

// prune drops admissions older than the window. Caller must hold mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.admissions[:0]
	for _, t := range l.admissions {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.admissions = kept
}

// CanAdmit reports whether a call may be admitted at now.
func (l *Limiter) CanAdmit(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(now)
	return len(l.admissions) < l.maxRequests
}

// Record registers an admission at now. Callers are expected to check
// CanAdmit (or use AwaitSlot) first.
func (l *Limiter) Record(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.admissions = append(l.admissions, now)
}

// AwaitSlot blocks until an admission slot is free or ctx is done. Instead of
// polling at a fixed interval, it sleeps until the admission that currently
// blocks the window is due to age out.
func (l *Limiter) AwaitSlot(ctx context.Context) error {
	for {
		now := time.Now()

		l.mu.Lock()
		l.prune(now)
		if len(l.admissions) < l.maxRequests {
			l.mu.Unlock()
			return nil
		}
		// The slot frees once this admission leaves the window.
		blocking := l.admissions[len(l.admissions)-l.maxRequests]
		l.mu.Unlock()

		wait := blocking.Add(l.window).Sub(now)
		if wait < time.Millisecond {
			wait = time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Status returns the current window occupancy.
func (l *Limiter) Status() Status {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(now)
	return Status{
		RequestsInWindow: len(l.admissions),
		MaxRequests:      l.maxRequests,
		Available:        l.maxRequests - len(l.admissions),
	}
}
