package repository

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

var (
	ErrInvalidAlarmData  = errors.New("invalid alarm data")
	ErrInvalidSnoozeData = fmt.Errorf("%w: invalid snooze state data", domain.ErrCorruptSnoozeState)
)
