package pacer

import (
	"context"
	"testing"
	"time"
)

func TestIntervalFirstActionImmediate(t *testing.T) {
	p := NewInterval(200 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first wait should be immediate, took %s", elapsed)
	}
}

func TestIntervalSpacing(t *testing.T) {
	p := NewInterval(100 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}

	// First token is free, the next two are paced
	if elapsed := time.Since(start); elapsed < 180*time.Millisecond {
		t.Errorf("three waits finished too quickly: %s", elapsed)
	}
}

func TestIntervalCancelled(t *testing.T) {
	p := NewInterval(time.Hour)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled wait")
	}
}

func TestIntervalAllow(t *testing.T) {
	p := NewInterval(time.Hour)

	if !p.Allow() {
		t.Error("first action should be allowed")
	}
	if p.Allow() {
		t.Error("second action should be paced")
	}
}

func TestIntervalDefaultSpacing(t *testing.T) {
	p := NewInterval(0)
	if p == nil || p.limiter == nil {
		t.Fatal("expected a usable pacer for non-positive spacing")
	}
}
