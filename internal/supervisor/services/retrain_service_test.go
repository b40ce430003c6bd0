// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockRetrainer struct {
	mu       sync.Mutex
	calls    int
	err      error
	delay    time.Duration
	deadline bool
}

func (m *mockRetrainer) Retrain(ctx context.Context) error {
	m.mu.Lock()
	m.calls++
	_, m.deadline = ctx.Deadline()
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.delay):
		}
	}
	return m.err
}

func (m *mockRetrainer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func runFor(t *testing.T, svc *RetrainService, d time.Duration) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return svc.Serve(ctx)
}

func TestRetrainService_String(t *testing.T) {
	svc := NewRetrainService(&mockRetrainer{}, RetrainServiceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "retrain-service" {
		t.Errorf("String() = %q, want %q", got, "retrain-service")
	}
}

func TestRetrainService_DefaultTimeout(t *testing.T) {
	svc := NewRetrainService(&mockRetrainer{}, RetrainServiceConfig{}, zerolog.Nop())
	if svc.config.Timeout != defaultRetrainTimeout {
		t.Errorf("Timeout = %v, want %v", svc.config.Timeout, defaultRetrainTimeout)
	}
}

func TestRetrainService_OnStartup(t *testing.T) {
	engine := &mockRetrainer{}
	svc := NewRetrainService(engine, RetrainServiceConfig{OnStartup: true}, zerolog.Nop())

	err := runFor(t, svc, 100*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := engine.callCount(); got != 1 {
		t.Errorf("Retrain called %d times, want 1", got)
	}
	if !engine.deadline {
		t.Error("retrain context should carry a deadline")
	}
}

func TestRetrainService_NoScheduleWithoutInterval(t *testing.T) {
	engine := &mockRetrainer{}
	svc := NewRetrainService(engine, RetrainServiceConfig{}, zerolog.Nop())

	_ = runFor(t, svc, 100*time.Millisecond)
	if got := engine.callCount(); got != 0 {
		t.Errorf("Retrain called %d times, want 0", got)
	}
}

func TestRetrainService_Scheduled(t *testing.T) {
	engine := &mockRetrainer{}
	svc := NewRetrainService(engine, RetrainServiceConfig{Interval: 20 * time.Millisecond}, zerolog.Nop())

	_ = runFor(t, svc, 150*time.Millisecond)
	if got := engine.callCount(); got < 3 {
		t.Errorf("Retrain called %d times, want at least 3", got)
	}
}

func TestRetrainService_FailureKeepsRunning(t *testing.T) {
	engine := &mockRetrainer{err: errors.New("feedback store unavailable")}
	svc := NewRetrainService(engine, RetrainServiceConfig{
		OnStartup: true,
		Interval:  20 * time.Millisecond,
	}, zerolog.Nop())

	err := runFor(t, svc, 100*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := engine.callCount(); got < 2 {
		t.Errorf("Retrain called %d times, want at least 2", got)
	}
}

func TestRetrainService_TimeoutBoundsRetrain(t *testing.T) {
	engine := &mockRetrainer{delay: time.Second}
	svc := NewRetrainService(engine, RetrainServiceConfig{
		OnStartup: true,
		Timeout:   20 * time.Millisecond,
	}, zerolog.Nop())

	start := time.Now()
	_ = runFor(t, svc, 200*time.Millisecond)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Serve took %v, retrain timeout was not applied", elapsed)
	}
}
