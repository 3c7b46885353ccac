package scheduler

import (
	"strconv"
	"strings"
	"time"
)

type Task struct {
	// Name is unique per schedule; a deleted name is never reused.
	Name        string
	CallbackURL string
	ScheduleAt  time.Time
	Payload     RingCallback
}

type RingCallback struct {
	AlarmID string `json:"alarm_id"`
	RingAt  int64  `json:"ring_at"`
}

type TasksRequest struct {
	Task TasksTask `json:"task"`
}

type TasksTask struct {
	Name         string           `json:"name,omitempty"`
	HTTPRequest  TasksHTTPRequest `json:"httpRequest"`
	ScheduleTime string           `json:"scheduleTime,omitempty"`
}

type TasksHTTPRequest struct {
	URL        string            `json:"url"`
	HTTPMethod string            `json:"httpMethod"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

type TasksResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

// TaskName derives a queue-safe task id for one pending fire of id at the given instant.
// nonce keeps names distinct when the same instant is scheduled again, since the queue
// refuses names that were recently created or deleted.
func TaskName(id string, at time.Time, nonce string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(at.UnixMilli(), 10))
	if nonce != "" {
		b.WriteByte('-')
		b.WriteString(nonce)
	}

	return b.String()
}
