package followup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/deeplink"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/timecalc"
)

const callbackBase = "http://alarms.test"

var (
	testNow = time.Date(2024, time.January, 17, 17, 0, 0, 0, time.UTC)
	ringAt  = time.Date(2024, time.January, 17, 7, 30, 0, 0, time.UTC)
)

type fakeAlarms struct {
	mu       sync.Mutex
	alarms   map[string]domain.Alarm
	disabled []string
}

func newFakeAlarms(alarms ...domain.Alarm) *fakeAlarms {
	f := &fakeAlarms{alarms: make(map[string]domain.Alarm)}
	for _, a := range alarms {
		f.alarms[a.ID] = a
	}
	return f
}

func (f *fakeAlarms) Get(_ context.Context, id string) (domain.Alarm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.alarms[id]
	if !ok {
		return domain.Alarm{}, domain.ErrAlarmNotFound
	}
	return a, nil
}

func (f *fakeAlarms) Disable(_ context.Context, id string) (domain.Alarm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.alarms[id]
	if !ok {
		return domain.Alarm{}, domain.ErrAlarmNotFound
	}
	a.Enabled = false
	f.alarms[id] = a
	f.disabled = append(f.disabled, id)
	return a, nil
}

func testAlarm(id string) domain.Alarm {
	a := domain.NewAlarm(testNow)
	a.ID = id
	a.RingHours = 7
	a.RingMins = 30
	return a
}

func repeatingAlarm(id string) domain.Alarm {
	a := testAlarm(id)
	a.Repeat = true
	a.RepeatDays = domain.NewRepeatDays(time.Monday, time.Wednesday, time.Friday)
	return a
}

func withLimiter(a domain.Alarm, starting, uses, decay int) domain.Alarm {
	a.BoosterSet.SnoozeLimiter = domain.SnoozeLimiterBooster{
		Enabled: true,
		Config: domain.SnoozeLimiterConfig{
			StartingMinutes: starting,
			MaxUses:         uses,
			DecayMinutes:    decay,
		},
	}
	return a
}

type fixture struct {
	alarms    *fakeAlarms
	ringState *domain.MockRingStateRepository
	scheduler *scheduler.MockScheduler
	recorder  *domain.MockRingEventRecorder
	coord     *Coordinator
}

func newFixture(t *testing.T, alarms ...domain.Alarm) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		alarms:    newFakeAlarms(alarms...),
		ringState: domain.NewMockRingStateRepository(ctrl),
		scheduler: scheduler.NewMockScheduler(ctrl),
		recorder:  domain.NewMockRingEventRecorder(ctrl),
	}
	f.recorder.EXPECT().RecordRingEvents(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.coord = NewCoordinator(
		f.alarms,
		f.ringState,
		f.scheduler,
		timecalc.NewCalculator(),
		f.recorder,
		nil,
		Config{
			CallbackBaseURL: callbackBase,
			DefaultSnooze:   5 * time.Minute,
			ProcessedTTL:    10 * time.Minute,
		},
		WithClock(func() time.Time { return testNow }),
	)

	return f
}

func (f *fixture) expectFreshEvent(times int) {
	f.ringState.EXPECT().
		MarkEventProcessed(gomock.Any(), gomock.Any(), 10*time.Minute).
		Return(true, nil).
		Times(times)
}

func TestCoordinator_DismissDuplicateDeliveryIsNoop(t *testing.T) {
	a := repeatingAlarm("alarm-1")
	a.BoosterSet.PostDismissCheck = domain.DoubleCheckBooster{
		Enabled: true,
		Config:  domain.DoubleCheckConfig{DelayMinutes: 3, GraceMinutes: 2},
	}
	f := newFixture(t, a)

	next := timecalc.NewCalculator().Next(a, testNow)
	callback := deeplink.DoubleCheckURL(callbackBase, a.ID, ringAt)

	f.expectFreshEvent(1)
	f.ringState.EXPECT().ClearSnooze(gomock.Any(), a.ID).Return(nil).Times(1)
	f.scheduler.EXPECT().
		ScheduleDoubleCheck(gomock.Any(), a.ID, callback, 3*time.Minute, 2*time.Minute).
		Return(nil).
		Times(1)
	f.scheduler.EXPECT().ScheduleAlarm(gomock.Any(), a.ID, next).Return(nil).Times(1)

	ev := Event{AlarmID: a.ID, Kind: deeplink.KindDismiss, RingAt: ringAt}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		duplicates int
		handled    int
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.coord.Handle(context.Background(), ev)
			if err != nil {
				t.Errorf("Handle() error = %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if out.Duplicate {
				duplicates++
			} else {
				handled++
			}
		}()
	}
	wg.Wait()

	if handled != 1 || duplicates != 1 {
		t.Errorf("handled = %d, duplicates = %d, want 1 and 1", handled, duplicates)
	}
}

func TestCoordinator_DuplicateMarkedByAnotherProcess(t *testing.T) {
	a := withLimiter(testAlarm("alarm-1"), 5, 3, 1)
	f := newFixture(t, a)

	f.ringState.EXPECT().
		MarkEventProcessed(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)

	out, err := f.coord.Handle(context.Background(), Event{AlarmID: a.ID, Kind: deeplink.KindSnooze, RingAt: ringAt})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !out.Duplicate {
		t.Error("expected duplicate outcome")
	}
}

func TestCoordinator_Dismiss(t *testing.T) {
	tests := []struct {
		name           string
		alarm          domain.Alarm
		wantLaunch     string
		wantBackground bool
		wantDisabled   bool
		wantNext       bool
	}{
		{
			name:           "one-shot alarm is disabled",
			alarm:          testAlarm("one-shot"),
			wantBackground: true,
			wantDisabled:   true,
		},
		{
			name: "launch booster reports package",
			alarm: func() domain.Alarm {
				a := testAlarm("launch")
				a.BoosterSet.PostDismissLaunch = domain.LaunchBooster{
					Enabled: true,
					Config:  domain.LaunchConfig{PackageName: "com.example.news"},
				}
				return a
			}(),
			wantLaunch:   "com.example.news",
			wantDisabled: true,
		},
		{
			name:           "repeating alarm is chained",
			alarm:          repeatingAlarm("repeat"),
			wantBackground: true,
			wantNext:       true,
		},
		{
			name: "repeat without days behaves as one-shot",
			alarm: func() domain.Alarm {
				a := testAlarm("no-days")
				a.Repeat = true
				return a
			}(),
			wantBackground: true,
			wantDisabled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.alarm)

			f.expectFreshEvent(1)
			f.ringState.EXPECT().ClearSnooze(gomock.Any(), tt.alarm.ID).Return(nil)
			if tt.wantNext {
				next := timecalc.NewCalculator().Next(tt.alarm, testNow)
				f.scheduler.EXPECT().ScheduleAlarm(gomock.Any(), tt.alarm.ID, next).Return(nil)
			}

			out, err := f.coord.Handle(context.Background(), Event{AlarmID: tt.alarm.ID, Kind: deeplink.KindDismiss, RingAt: ringAt})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if out.LaunchPackage != tt.wantLaunch {
				t.Errorf("LaunchPackage = %q, want %q", out.LaunchPackage, tt.wantLaunch)
			}
			if out.Background != tt.wantBackground {
				t.Errorf("Background = %v, want %v", out.Background, tt.wantBackground)
			}
			if out.Disabled != tt.wantDisabled {
				t.Errorf("Disabled = %v, want %v", out.Disabled, tt.wantDisabled)
			}
			if (out.NextTrigger != nil) != tt.wantNext {
				t.Errorf("NextTrigger = %v, want set = %v", out.NextTrigger, tt.wantNext)
			}
			if out.DoubleCheckAt != nil {
				t.Errorf("DoubleCheckAt = %v, want nil", out.DoubleCheckAt)
			}

			gotDisabled := len(f.alarms.disabled) == 1
			if gotDisabled != tt.wantDisabled {
				t.Errorf("Disable called = %v, want %v", gotDisabled, tt.wantDisabled)
			}
		})
	}
}

func TestCoordinator_DismissSchedulesDoubleCheck(t *testing.T) {
	a := testAlarm("alarm-1")
	a.BoosterSet.PostDismissCheck = domain.DoubleCheckBooster{
		Enabled: true,
		Config:  domain.DoubleCheckConfig{DelayMinutes: 10, GraceMinutes: 5},
	}
	f := newFixture(t, a)

	f.expectFreshEvent(1)
	f.ringState.EXPECT().ClearSnooze(gomock.Any(), a.ID).Return(nil)
	f.scheduler.EXPECT().
		ScheduleDoubleCheck(gomock.Any(), a.ID, deeplink.DoubleCheckURL(callbackBase, a.ID, ringAt), 10*time.Minute, 5*time.Minute).
		Return(nil)

	out, err := f.coord.Handle(context.Background(), Event{AlarmID: a.ID, Kind: deeplink.KindDismiss, RingAt: ringAt})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	want := testNow.Add(15 * time.Minute)
	if out.DoubleCheckAt == nil || !out.DoubleCheckAt.Equal(want) {
		t.Errorf("DoubleCheckAt = %v, want %v", out.DoubleCheckAt, want)
	}
}

func TestCoordinator_DoubleCheckDismissOnlyCleansUp(t *testing.T) {
	f := newFixture(t)

	f.expectFreshEvent(1)
	f.scheduler.EXPECT().DeleteAlarm(gomock.Any(), "alarm-1-double-check").Return(nil)

	ev := Event{AlarmID: "alarm-1", Kind: deeplink.KindDoubleCheckDismiss, RingAt: ringAt}
	out, err := f.coord.Handle(context.Background(), ev)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Disabled || out.Background || out.NextTrigger != nil {
		t.Errorf("double-check dismiss ran the dismiss path: %+v", out)
	}
}

func TestCoordinator_Snooze(t *testing.T) {
	tests := []struct {
		name      string
		alarm     domain.Alarm
		record    *domain.SnoozeRecord
		getErr    error
		wantAfter time.Duration
		wantState *domain.SnoozeState
	}{
		{
			name:      "active state decays",
			alarm:     withLimiter(testAlarm("a"), 5, 3, 1),
			record:    &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 3, DecayMinutes: 1, DurationMinutes: 5}},
			wantAfter: 4 * time.Minute,
			wantState: &domain.SnoozeState{Uses: 2, DecayMinutes: 1, DurationMinutes: 4},
		},
		{
			name:      "absent state is initialised",
			alarm:     withLimiter(testAlarm("a"), 10, 3, 2),
			getErr:    domain.ErrSnoozeStateNotFound,
			wantAfter: 10 * time.Minute,
			wantState: &domain.SnoozeState{Uses: 3, DecayMinutes: 2, DurationMinutes: 10},
		},
		{
			name:      "disabled marker is initialised when limiter is on",
			alarm:     withLimiter(testAlarm("a"), 8, 2, 1),
			record:    &domain.SnoozeRecord{Disabled: true},
			wantAfter: 8 * time.Minute,
			wantState: &domain.SnoozeState{Uses: 2, DecayMinutes: 1, DurationMinutes: 8},
		},
		{
			name:      "corrupt state counts as absent",
			alarm:     withLimiter(testAlarm("a"), 6, 1, 1),
			getErr:    domain.ErrCorruptSnoozeState,
			wantAfter: 6 * time.Minute,
			wantState: &domain.SnoozeState{Uses: 1, DecayMinutes: 1, DurationMinutes: 6},
		},
		{
			name:      "fully decayed duration never fires immediately",
			alarm:     withLimiter(testAlarm("a"), 5, 3, 5),
			record:    &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 1, DecayMinutes: 5, DurationMinutes: 3}},
			wantAfter: time.Minute,
			wantState: &domain.SnoozeState{Uses: 0, DecayMinutes: 5, DurationMinutes: 0},
		},
		{
			name:      "limiter off is unlimited",
			alarm:     testAlarm("a"),
			getErr:    domain.ErrSnoozeStateNotFound,
			wantAfter: 5 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.alarm)
			wantAt := testNow.Add(tt.wantAfter)

			f.expectFreshEvent(1)
			f.ringState.EXPECT().GetSnooze(gomock.Any(), tt.alarm.ID).Return(tt.record, tt.getErr)
			f.scheduler.EXPECT().ScheduleAlarm(gomock.Any(), tt.alarm.ID, wantAt).Return(nil)
			if tt.wantState != nil {
				want := *tt.wantState
				want.ExpectedFireAt = wantAt
				f.ringState.EXPECT().SaveSnooze(gomock.Any(), tt.alarm.ID, want).Return(nil)
			} else {
				f.ringState.EXPECT().DisableSnooze(gomock.Any(), tt.alarm.ID).Return(nil)
			}

			out, err := f.coord.Handle(context.Background(), Event{AlarmID: tt.alarm.ID, Kind: deeplink.KindSnooze, RingAt: ringAt})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if out.SnoozeUntil == nil || !out.SnoozeUntil.Equal(wantAt) {
				t.Errorf("SnoozeUntil = %v, want %v", out.SnoozeUntil, wantAt)
			}
			if out.SnoozeUnlimited != (tt.wantState == nil) {
				t.Errorf("SnoozeUnlimited = %v", out.SnoozeUnlimited)
			}
			if tt.wantState != nil && (out.SnoozeUses == nil || *out.SnoozeUses != tt.wantState.Uses) {
				t.Errorf("SnoozeUses = %v, want %d", out.SnoozeUses, tt.wantState.Uses)
			}
		})
	}
}

func TestCoordinator_FireResetsStaleSnoozeState(t *testing.T) {
	tests := []struct {
		name      string
		record    *domain.SnoozeRecord
		getErr    error
		wantReset bool
	}{
		{
			name:      "state from an earlier cycle",
			record:    &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 1, DurationMinutes: 3, ExpectedFireAt: ringAt.Add(-24 * time.Hour)}},
			wantReset: true,
		},
		{
			name:      "disabled marker",
			record:    &domain.SnoozeRecord{Disabled: true},
			wantReset: true,
		},
		{
			name:   "fire scheduled by the last snooze",
			record: &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 1, DurationMinutes: 3, ExpectedFireAt: ringAt}},
		},
		{
			name:   "nothing stored",
			getErr: domain.ErrSnoozeStateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAlarm("alarm-1")
			f := newFixture(t, a)

			f.expectFreshEvent(1)
			f.ringState.EXPECT().GetSnooze(gomock.Any(), a.ID).Return(tt.record, tt.getErr)
			if tt.wantReset {
				f.ringState.EXPECT().ClearSnooze(gomock.Any(), a.ID).Return(nil)
			}

			out, err := f.coord.Handle(context.Background(), Event{AlarmID: a.ID, Kind: deeplink.KindFire, RingAt: ringAt})
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if out.Stale {
				t.Error("enabled alarm reported stale")
			}
		})
	}
}

func TestCoordinator_FireForDisabledAlarmIsStale(t *testing.T) {
	a := testAlarm("alarm-1")
	a.Enabled = false
	f := newFixture(t, a)

	f.expectFreshEvent(1)

	out, err := f.coord.Handle(context.Background(), Event{AlarmID: a.ID, Kind: deeplink.KindFire, RingAt: ringAt})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !out.Stale {
		t.Error("expected stale outcome")
	}
}

func TestCoordinator_FailureReleasesKey(t *testing.T) {
	a := withLimiter(testAlarm("alarm-1"), 5, 3, 1)
	f := newFixture(t, a)
	ev := Event{AlarmID: a.ID, Kind: deeplink.KindSnooze, RingAt: ringAt}
	wantAt := testNow.Add(5 * time.Minute)

	f.expectFreshEvent(2)
	f.ringState.EXPECT().GetSnooze(gomock.Any(), a.ID).Return(nil, domain.ErrSnoozeStateNotFound).Times(2)
	gomock.InOrder(
		f.scheduler.EXPECT().ScheduleAlarm(gomock.Any(), a.ID, wantAt).Return(errors.New("scheduler unavailable")),
		f.ringState.EXPECT().ReleaseEvent(gomock.Any(), ev.key()).Return(nil),
		f.scheduler.EXPECT().ScheduleAlarm(gomock.Any(), a.ID, wantAt).Return(nil),
	)
	f.ringState.EXPECT().SaveSnooze(gomock.Any(), a.ID, gomock.Any()).Return(nil)

	if _, err := f.coord.Handle(context.Background(), ev); !errors.Is(err, domain.ErrNativeCall) {
		t.Fatalf("Handle() error = %v, want ErrNativeCall", err)
	}

	out, err := f.coord.Handle(context.Background(), ev)
	if err != nil {
		t.Fatalf("retry Handle() error = %v", err)
	}
	if out.Duplicate {
		t.Error("retry after failure was treated as duplicate")
	}
}

func TestCoordinator_UnknownAlarmReleasesKey(t *testing.T) {
	f := newFixture(t)
	ev := Event{AlarmID: "missing", Kind: deeplink.KindDismiss, RingAt: ringAt}

	f.expectFreshEvent(1)
	f.ringState.EXPECT().ReleaseEvent(gomock.Any(), ev.key()).Return(nil)

	if _, err := f.coord.Handle(context.Background(), ev); !errors.Is(err, domain.ErrAlarmNotFound) {
		t.Fatalf("Handle() error = %v, want ErrAlarmNotFound", err)
	}
}

func TestCoordinator_MissingRingInstance(t *testing.T) {
	f := newFixture(t, testAlarm("alarm-1"))

	for _, kind := range []deeplink.Kind{deeplink.KindDismiss, deeplink.KindSnooze} {
		_, err := f.coord.Handle(context.Background(), Event{AlarmID: "alarm-1", Kind: kind})
		if !errors.Is(err, ErrMissingRingInstance) {
			t.Errorf("Handle(%s) error = %v, want ErrMissingRingInstance", kind, err)
		}
	}
}

func TestCoordinator_SnoozeAllowed(t *testing.T) {
	tests := []struct {
		name   string
		record *domain.SnoozeRecord
		getErr error
		want   bool
	}{
		{name: "nothing stored", getErr: domain.ErrSnoozeStateNotFound, want: true},
		{name: "unlimited", record: &domain.SnoozeRecord{Disabled: true}, want: true},
		{name: "uses left", record: &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 2, DurationMinutes: 3}}, want: true},
		{name: "uses exhausted", record: &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 0, DurationMinutes: 3}}, want: false},
		{name: "duration exhausted", record: &domain.SnoozeRecord{State: domain.SnoozeState{Uses: 2, DurationMinutes: 0}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := withLimiter(testAlarm("alarm-1"), 5, 3, 1)
			f := newFixture(t, a)

			f.ringState.EXPECT().GetSnooze(gomock.Any(), a.ID).Return(tt.record, tt.getErr)

			got, err := f.coord.SnoozeAllowed(context.Background(), a.ID)
			if err != nil {
				t.Fatalf("SnoozeAllowed() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SnoozeAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInflight_ExpiresEntries(t *testing.T) {
	f := newInflight(time.Minute)

	if !f.acquire("k", testNow) {
		t.Fatal("first acquire failed")
	}
	if f.acquire("k", testNow.Add(30*time.Second)) {
		t.Error("acquire succeeded while key is held")
	}
	if !f.acquire("k", testNow.Add(time.Minute)) {
		t.Error("acquire failed after expiry")
	}

	f.release("k")
	if !f.acquire("k", testNow.Add(time.Minute)) {
		t.Error("acquire failed after release")
	}
}
