package deeplink

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	ringAt := time.UnixMilli(1705515840000)

	tests := []struct {
		name     string
		raw      string
		wantID   string
		wantKind Kind
		wantAt   time.Time
	}{
		{
			name:     "plain fire",
			raw:      "alarmclock://ring/abc",
			wantID:   "abc",
			wantKind: KindFire,
		},
		{
			name:     "dismiss",
			raw:      "alarmclock://ring/abc?dismiss=true&at=1705515840000",
			wantID:   "abc",
			wantKind: KindDismiss,
			wantAt:   ringAt,
		},
		{
			name:     "dismiss must be the string true",
			raw:      "alarmclock://ring/abc?dismiss=1",
			wantID:   "abc",
			wantKind: KindFire,
		},
		{
			name:     "snooze",
			raw:      "/api/v1/alarms/abc/ring?snooze=true",
			wantID:   "abc",
			wantKind: KindSnooze,
		},
		{
			name:     "dismiss wins over snooze",
			raw:      "/api/v1/alarms/abc/ring?snooze=true&dismiss=true",
			wantID:   "abc",
			wantKind: KindDismiss,
		},
		{
			name:     "double check present without value",
			raw:      "https://alarms.example.com/api/v1/alarms/abc/ring?dismissDouble&at=1705515840000",
			wantID:   "abc",
			wantKind: KindDoubleCheckFire,
			wantAt:   ringAt,
		},
		{
			name:     "double check with any value",
			raw:      "alarmclock://ring/abc?dismissDouble=false",
			wantID:   "abc",
			wantKind: KindDoubleCheckFire,
		},
		{
			name:     "double check dismiss",
			raw:      "alarmclock://ring/abc?dismissDouble&dismiss=true",
			wantID:   "abc",
			wantKind: KindDoubleCheckDismiss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.raw, err)
			}
			if r.AlarmID != tt.wantID {
				t.Errorf("AlarmID = %q, want %q", r.AlarmID, tt.wantID)
			}
			if got := r.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", got, tt.wantKind)
			}
			if !r.RingAt.Equal(tt.wantAt) {
				t.Errorf("RingAt = %v, want %v", r.RingAt, tt.wantAt)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "wrong host", raw: "alarmclock://settings/abc", wantErr: ErrInvalidLink},
		{name: "unknown path", raw: "/api/v1/alarms/abc", wantErr: ErrInvalidLink},
		{name: "nested id", raw: "alarmclock://ring/a/b", wantErr: ErrInvalidLink},
		{name: "missing id", raw: "alarmclock://ring/", wantErr: ErrMissingID},
		{name: "bad at", raw: "alarmclock://ring/abc?at=noon", wantErr: ErrInvalidAtArg},
		{name: "negative at", raw: "alarmclock://ring/abc?at=-5", wantErr: ErrInvalidAtArg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestRingURLRoundTrip(t *testing.T) {
	ringAt := time.Date(2024, 1, 17, 18, 24, 0, 0, time.UTC)

	r, err := Parse(RingURL("https://alarms.example.com/", "abc", ringAt))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r.Kind() != KindFire {
		t.Errorf("Kind() = %q, want fire", r.Kind())
	}
	if !r.RingAt.Equal(ringAt) {
		t.Errorf("RingAt = %v, want %v", r.RingAt, ringAt)
	}

	r, err = Parse(DoubleCheckURL("https://alarms.example.com", "abc", ringAt))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r.Kind() != KindDoubleCheckFire {
		t.Errorf("Kind() = %q, want double_check_fire", r.Kind())
	}
}

func TestAppLink(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		want  string
	}{
		{name: "fire", route: Route{AlarmID: "abc"}, want: "alarmclock://ring/abc"},
		{name: "snooze", route: Route{AlarmID: "abc", Snooze: true}, want: "alarmclock://ring/abc?snooze=true"},
		{
			name:  "double check dismiss",
			route: Route{AlarmID: "abc", DismissDouble: true, Dismiss: true},
			want:  "alarmclock://ring/abc?dismissDouble&dismiss=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppLink(tt.route); got != tt.want {
				t.Errorf("AppLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromQuery(t *testing.T) {
	if _, err := FromQuery("", url.Values{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("FromQuery(empty id) error = %v, want %v", err, ErrMissingID)
	}

	r, err := FromQuery("abc", url.Values{"snooze": {"true"}, "at": {"1705515840000"}})
	if err != nil {
		t.Fatalf("FromQuery() error = %v", err)
	}
	if r.Kind() != KindSnooze || !r.HasRingAt() {
		t.Errorf("FromQuery() = %+v, want snooze with ring instance", r)
	}
}
