// Package deeplink encodes and decodes the ring route shared by the native scheduler
// callbacks and the ringing screen buttons.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	Scheme   = "alarmclock"
	RingHost = "ring"

	apiPrefix = "/api/v1/alarms/"
	ringPath  = "/ring"

	ParamDismiss       = "dismiss"
	ParamSnooze        = "snooze"
	ParamDismissDouble = "dismissDouble"
	ParamAt            = "at"
)

var (
	ErrInvalidLink  = errors.New("invalid ring link")
	ErrMissingID    = errors.New("ring link has no alarm id")
	ErrInvalidAtArg = errors.New("ring link has an invalid at parameter")
)

type Kind string

const (
	KindFire               Kind = "fire"
	KindDismiss            Kind = "dismiss"
	KindSnooze             Kind = "snooze"
	KindDoubleCheckFire    Kind = "double_check_fire"
	KindDoubleCheckDismiss Kind = "double_check_dismiss"
)

type Route struct {
	AlarmID       string
	Dismiss       bool
	Snooze        bool
	DismissDouble bool
	// RingAt is the ring instance the link refers to; zero when the link carries none.
	RingAt time.Time
}

// Kind resolves the flags into the single event the coordinator handles.
func (r Route) Kind() Kind {
	switch {
	case r.DismissDouble && r.Dismiss:
		return KindDoubleCheckDismiss
	case r.DismissDouble:
		return KindDoubleCheckFire
	case r.Dismiss:
		return KindDismiss
	case r.Snooze:
		return KindSnooze
	default:
		return KindFire
	}
}

func (r Route) HasRingAt() bool {
	return !r.RingAt.IsZero()
}

// Parse accepts alarmclock://ring/<id>?... and /api/v1/alarms/<id>/ring?..., with or without
// scheme and host for the latter.
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}

	var id string
	switch {
	case u.Scheme == Scheme:
		if u.Host != RingHost {
			return Route{}, fmt.Errorf("%w: unexpected host %q", ErrInvalidLink, u.Host)
		}
		id = strings.Trim(u.Path, "/")
	case strings.HasPrefix(u.Path, apiPrefix) && strings.HasSuffix(u.Path, ringPath):
		id = strings.TrimSuffix(strings.TrimPrefix(u.Path, apiPrefix), ringPath)
	default:
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidLink, raw)
	}

	if strings.Contains(id, "/") {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidLink, raw)
	}

	return FromQuery(id, u.Query())
}

func FromQuery(id string, q url.Values) (Route, error) {
	if id == "" {
		return Route{}, ErrMissingID
	}

	r := Route{
		AlarmID:       id,
		Dismiss:       q.Get(ParamDismiss) == "true",
		Snooze:        q.Get(ParamSnooze) == "true",
		DismissDouble: q.Has(ParamDismissDouble),
	}

	if v := q.Get(ParamAt); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			return Route{}, ErrInvalidAtArg
		}
		r.RingAt = time.UnixMilli(ms)
	}

	return r, nil
}

// RingURL is the callback the scheduler invokes when the alarm instance at ringAt fires.
func RingURL(baseURL, alarmID string, ringAt time.Time) string {
	q := url.Values{}
	q.Set(ParamAt, strconv.FormatInt(ringAt.UnixMilli(), 10))

	return ringBase(baseURL, alarmID) + "?" + q.Encode()
}

// DoubleCheckURL is the callback for the post-dismiss double check of the ring at ringAt.
func DoubleCheckURL(baseURL, alarmID string, ringAt time.Time) string {
	q := url.Values{}
	q.Set(ParamAt, strconv.FormatInt(ringAt.UnixMilli(), 10))

	return ringBase(baseURL, alarmID) + "?" + ParamDismissDouble + "&" + q.Encode()
}

// AppLink is the alarmclock:// form of the same route.
func AppLink(r Route) string {
	q := url.Values{}
	if r.Dismiss {
		q.Set(ParamDismiss, "true")
	}
	if r.Snooze {
		q.Set(ParamSnooze, "true")
	}
	if r.HasRingAt() {
		q.Set(ParamAt, strconv.FormatInt(r.RingAt.UnixMilli(), 10))
	}

	link := Scheme + "://" + RingHost + "/" + url.PathEscape(r.AlarmID)
	if r.DismissDouble {
		link += "?" + ParamDismissDouble
		if enc := q.Encode(); enc != "" {
			link += "&" + enc
		}
		return link
	}
	if enc := q.Encode(); enc != "" {
		link += "?" + enc
	}

	return link
}

func ringBase(baseURL, alarmID string) string {
	return strings.TrimRight(baseURL, "/") + apiPrefix + url.PathEscape(alarmID) + ringPath
}
