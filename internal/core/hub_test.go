package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHubRunsTasksInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	var order []int
	for i := range 10 {
		if !hub.Post(func() { order = append(order, i) }) {
			t.Fatalf("post %d rejected", i)
		}
	}

	var got []int
	if err := hub.Do(ctx, func() { got = append(got, order...) }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 tasks, got %v", got)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran out of order: %v", i, got)
		}
	}
}

func TestHubSurvivesPanickingTask(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	hub.Post(func() { panic("boom") })

	ran := false
	if err := hub.Do(ctx, func() { ran = true }); err != nil {
		t.Fatalf("do after panic: %v", err)
	}
	if !ran {
		t.Fatalf("task after panic did not run")
	}
}

func TestHubRejectsAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(nil)
	go hub.Run(ctx)
	cancel()
	mustClose(t, hub.Done())

	if hub.Post(func() {}) {
		t.Fatalf("post accepted after stop")
	}
	err := hub.Do(context.Background(), func() {})
	if !errors.Is(err, ErrHubStopped) {
		t.Fatalf("expected ErrHubStopped, got %v", err)
	}
}
