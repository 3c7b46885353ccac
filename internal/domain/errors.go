package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAlarmNotFound       = errors.New("alarm not found")
	ErrInvalidAlarm        = errors.New("invalid alarm")
	ErrInvalidRingTime     = fmt.Errorf("%w: ring time must be a valid time of day", ErrInvalidAlarm)
	ErrInvalidBooster      = fmt.Errorf("%w: invalid booster configuration", ErrInvalidAlarm)
	ErrSnoozeStateNotFound = errors.New("snooze state not found")
	ErrTaskNotIndexed      = errors.New("no scheduler task indexed for id")
	ErrCorruptSnoozeState  = errors.New("corrupt snooze state")

	// ErrNativeCall marks a failed native scheduler call. State changes that preceded it
	// are kept.
	ErrNativeCall = errors.New("native scheduler call failed")
)
