package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	pool := NewPool(3, 16)
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 16; i++ {
		pool.Submit(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	pool.Stop()

	if got := ran.Load(); got != 16 {
		t.Errorf("ran = %d, want 16", got)
	}
}

func TestPoolSurvivesFailingTasks(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start(context.Background())

	var ran atomic.Int32
	pool.Submit(func(ctx context.Context) error { return errors.New("boom") })
	pool.Submit(func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	pool.Stop()

	if got := ran.Load(); got != 1 {
		t.Errorf("later task did not run after a failure; ran = %d", got)
	}
}

func TestNewPoolClampsWorkerCount(t *testing.T) {
	pool := NewPool(0, 0)
	pool.Start(context.Background())

	var ran atomic.Int32
	pool.Submit(func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	pool.Stop()

	if got := ran.Load(); got != 1 {
		t.Errorf("ran = %d, want 1", got)
	}
}
