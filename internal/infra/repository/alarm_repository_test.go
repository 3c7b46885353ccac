package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/testutil"
)

func openTestStore(ctx context.Context, t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLiteStore(ctx, testutil.SQLitePath(t))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close sqlite store: %v", err)
		}
	})

	return store
}

func testAlarm(id string, enabled bool, modified time.Time) domain.Alarm {
	a := domain.NewAlarm(modified)
	a.ID = id
	a.Name = "wake " + id
	a.RingHours = 6
	a.RingMins = 45
	a.Repeat = true
	a.RepeatDays = domain.NewRepeatDays(time.Monday, time.Friday)
	a.Vibrate = true
	a.Ringtone = domain.Ringtone{Name: "Bells", URI: "content://media/bells"}
	a.Puzzles = []domain.Puzzle{{Kind: "math", Difficulty: 2, Rounds: 3}}
	a.BoosterSet.SnoozeLimiter = domain.SnoozeLimiterBooster{
		Enabled: true,
		Config:  domain.SnoozeLimiterConfig{StartingMinutes: 5, MaxUses: 3, DecayMinutes: 1},
	}
	a.Enabled = enabled
	return a
}

func TestAlarmRepositorySaveAndList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(ctx, t)

	modified := time.Date(2024, 1, 17, 18, 24, 0, 123_000_000, time.UTC)
	want := []domain.Alarm{
		testAlarm("a", true, modified),
		testAlarm("b", false, modified.Add(time.Millisecond)),
	}

	if err := store.SaveAlarms(ctx, want); err != nil {
		t.Fatalf("SaveAlarms() error = %v", err)
	}

	got, err := store.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("ListAlarms() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListAlarms() returned %d alarms, want 2", len(got))
	}

	a := got[0]
	if a.ID != "a" || a.Name != "wake a" || a.RingHours != 6 || a.RingMins != 45 {
		t.Errorf("unexpected alarm: %+v", a)
	}
	if !a.Repeat || !a.Vibrate || !a.Enabled {
		t.Errorf("boolean columns not restored: %+v", a)
	}
	if !a.RepeatDays.IsEnabled(time.Monday) || !a.RepeatDays.IsEnabled(time.Friday) || a.RepeatDays.IsEnabled(time.Sunday) {
		t.Errorf("repeat days = %+v", a.RepeatDays)
	}
	if a.Ringtone.Name != "Bells" || a.Ringtone.URI != "content://media/bells" {
		t.Errorf("ringtone = %+v", a.Ringtone)
	}
	if len(a.Puzzles) != 1 || a.Puzzles[0].Kind != "math" {
		t.Errorf("puzzles = %+v", a.Puzzles)
	}
	if !a.BoosterSet.SnoozeLimiter.Enabled || a.BoosterSet.SnoozeLimiter.Config.MaxUses != 3 {
		t.Errorf("booster set = %+v", a.BoosterSet)
	}
	if !a.LastModified.Equal(modified) {
		t.Errorf("last modified = %v, want %v", a.LastModified, modified)
	}

	enabled, err := store.ListEnabledAlarms(ctx)
	if err != nil {
		t.Fatalf("ListEnabledAlarms() error = %v", err)
	}
	if len(enabled) != 1 || enabled[0].ID != "a" {
		t.Errorf("ListEnabledAlarms() = %+v, want only a", enabled)
	}
}

func TestAlarmRepositorySaveUpserts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(ctx, t)

	modified := time.Date(2024, 1, 17, 18, 24, 0, 0, time.UTC)
	a := testAlarm("a", true, modified)
	if err := store.SaveAlarms(ctx, []domain.Alarm{a}); err != nil {
		t.Fatalf("SaveAlarms() error = %v", err)
	}

	a.Enabled = false
	a.RingHours = 7
	a.LastModified = modified.Add(time.Second)
	if err := store.SaveAlarms(ctx, []domain.Alarm{a}); err != nil {
		t.Fatalf("SaveAlarms() error = %v", err)
	}

	got, err := store.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("ListAlarms() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListAlarms() returned %d alarms, want 1", len(got))
	}
	if got[0].Enabled || got[0].RingHours != 7 {
		t.Errorf("alarm not updated: %+v", got[0])
	}
}

func TestAlarmRepositorySaveIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(ctx, t)

	bad := testAlarm("bad", true, time.Now())
	bad.RingHours = 25

	err := store.SaveAlarms(ctx, []domain.Alarm{testAlarm("good", true, time.Now()), bad})
	if !errors.Is(err, domain.ErrInvalidAlarm) {
		t.Fatalf("SaveAlarms() error = %v, want %v", err, domain.ErrInvalidAlarm)
	}

	got, err := store.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("ListAlarms() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListAlarms() = %+v, want no rows written", got)
	}
}

func TestAlarmRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(ctx, t)

	if err := store.SaveAlarms(ctx, []domain.Alarm{testAlarm("a", true, time.Now())}); err != nil {
		t.Fatalf("SaveAlarms() error = %v", err)
	}
	if err := store.DeleteAlarm(ctx, "a"); err != nil {
		t.Fatalf("DeleteAlarm() error = %v", err)
	}
	if err := store.DeleteAlarm(ctx, "missing"); err != nil {
		t.Errorf("DeleteAlarm(missing) error = %v", err)
	}

	got, err := store.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("ListAlarms() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListAlarms() = %+v, want empty", got)
	}
}

func TestAlarmRepositoryDecodesCorruptRowsWithDefaults(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(ctx, t)

	corrupt := alarmRow{
		ID:           "corrupt",
		RingHours:    30,
		RingMins:     5,
		Repeat:       1,
		RepeatDays:   `[{"day":0,"enabled":true}]`,
		Ringtone:     `not json`,
		Puzzles:      `null`,
		BoosterSet:   `{"post_dismiss_launch":{"enabled":true,"config":{"package_name":""}}}`,
		Enabled:      1,
		LastModified: "yesterday",
	}
	if err := store.DB().Create(&corrupt).Error; err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	got, err := store.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("ListAlarms() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListAlarms() returned %d alarms, want 1", len(got))
	}

	a := got[0]
	if err := a.Validate(); err != nil {
		t.Errorf("decoded alarm is invalid: %v", err)
	}
	if a.RingHours != domain.DefaultRingHours || a.RingMins != domain.DefaultRingMins {
		t.Errorf("ring time = %02d:%02d, want default", a.RingHours, a.RingMins)
	}
	if a.RepeatDays.AnyEnabled() {
		t.Errorf("repeat days = %+v, want default week", a.RepeatDays)
	}
	if !a.Ringtone.IsSilent() {
		t.Errorf("ringtone = %+v, want silent", a.Ringtone)
	}
	if a.Puzzles == nil || len(a.Puzzles) != 0 {
		t.Errorf("puzzles = %#v, want empty list", a.Puzzles)
	}
	if a.BoosterSet.PostDismissLaunch.Enabled {
		t.Error("invalid booster set was kept")
	}
	if !a.LastModified.IsZero() {
		t.Errorf("last modified = %v, want zero", a.LastModified)
	}
}

func TestSQLiteOpenerOpensIndependentHandles(t *testing.T) {
	ctx := context.Background()
	opener := NewSQLiteOpener(testutil.SQLitePath(t))

	first, err := opener.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := first.SaveAlarms(ctx, []domain.Alarm{testAlarm("a", true, time.Now())}); err != nil {
		t.Fatalf("SaveAlarms() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := opener.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer second.Close()

	got, err := second.ListEnabledAlarms(ctx)
	if err != nil {
		t.Fatalf("ListEnabledAlarms() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListEnabledAlarms() returned %d alarms, want 1", len(got))
	}
}
