package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/testutil"
)

func TestRingStateRepositorySnooze(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewRingStateRepository(client)

	if _, err := repo.GetSnooze(ctx, "a"); !errors.Is(err, domain.ErrSnoozeStateNotFound) {
		t.Fatalf("GetSnooze() error = %v, want %v", err, domain.ErrSnoozeStateNotFound)
	}

	expected := time.Date(2024, 1, 17, 18, 28, 0, 0, time.UTC)
	state := domain.SnoozeState{Uses: 2, DecayMinutes: 1, DurationMinutes: 4, ExpectedFireAt: expected}
	if err := repo.SaveSnooze(ctx, "a", state); err != nil {
		t.Fatalf("SaveSnooze() error = %v", err)
	}

	raw, err := client.Get(ctx, "alarm:snooze:a").Result()
	if err != nil {
		t.Fatalf("failed to read raw state: %v", err)
	}
	if raw != `{"uses":2,"decay":1,"duration":4,"expected_fire_at":"2024-01-17T18:28:00Z"}` {
		t.Errorf("raw state = %s", raw)
	}

	got, err := repo.GetSnooze(ctx, "a")
	if err != nil {
		t.Fatalf("GetSnooze() error = %v", err)
	}
	if !got.Active() || got.State.Uses != 2 || got.State.DurationMinutes != 4 || !got.State.ExpectedFireAt.Equal(expected) {
		t.Errorf("GetSnooze() = %+v", got)
	}

	if err := repo.DisableSnooze(ctx, "a"); err != nil {
		t.Fatalf("DisableSnooze() error = %v", err)
	}
	got, err = repo.GetSnooze(ctx, "a")
	if err != nil {
		t.Fatalf("GetSnooze() error = %v", err)
	}
	if !got.Disabled || got.Active() {
		t.Errorf("GetSnooze() = %+v, want disabled", got)
	}

	if err := repo.ClearSnooze(ctx, "a"); err != nil {
		t.Fatalf("ClearSnooze() error = %v", err)
	}
	if _, err := repo.GetSnooze(ctx, "a"); !errors.Is(err, domain.ErrSnoozeStateNotFound) {
		t.Errorf("GetSnooze() after clear error = %v", err)
	}
}

func TestRingStateRepositoryCorruptSnooze(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	if err := client.Set(ctx, "alarm:snooze:a", "{broken", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	repo := NewRingStateRepository(client)
	if _, err := repo.GetSnooze(ctx, "a"); !errors.Is(err, ErrInvalidSnoozeData) {
		t.Errorf("GetSnooze() error = %v, want %v", err, ErrInvalidSnoozeData)
	}
}

func TestRingStateRepositoryProcessedEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewRingStateRepository(client)

	first, err := repo.MarkEventProcessed(ctx, "a|dismiss|1705515840000", time.Minute)
	if err != nil {
		t.Fatalf("MarkEventProcessed() error = %v", err)
	}
	second, err := repo.MarkEventProcessed(ctx, "a|dismiss|1705515840000", time.Minute)
	if err != nil {
		t.Fatalf("MarkEventProcessed() error = %v", err)
	}
	if !first || second {
		t.Errorf("MarkEventProcessed() = %v then %v, want true then false", first, second)
	}

	if err := repo.ReleaseEvent(ctx, "a|dismiss|1705515840000"); err != nil {
		t.Fatalf("ReleaseEvent() error = %v", err)
	}
	again, err := repo.MarkEventProcessed(ctx, "a|dismiss|1705515840000", time.Minute)
	if err != nil {
		t.Fatalf("MarkEventProcessed() error = %v", err)
	}
	if !again {
		t.Error("MarkEventProcessed() after release = false, want true")
	}
}

func TestTaskIndexRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskIndexRepository(client)

	if _, err := repo.GetTaskName(ctx, "a"); !errors.Is(err, domain.ErrTaskNotIndexed) {
		t.Fatalf("GetTaskName() error = %v, want %v", err, domain.ErrTaskNotIndexed)
	}
	if err := repo.SetTaskName(ctx, "a", "a-1705515840000"); err != nil {
		t.Fatalf("SetTaskName() error = %v", err)
	}
	name, err := repo.GetTaskName(ctx, "a")
	if err != nil || name != "a-1705515840000" {
		t.Errorf("GetTaskName() = %q, %v", name, err)
	}
	if err := repo.DeleteTaskName(ctx, "a"); err != nil {
		t.Fatalf("DeleteTaskName() error = %v", err)
	}
	if _, err := repo.GetTaskName(ctx, "a"); !errors.Is(err, domain.ErrTaskNotIndexed) {
		t.Errorf("GetTaskName() after delete error = %v", err)
	}
}
