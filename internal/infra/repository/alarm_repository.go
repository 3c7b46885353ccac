package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/domain"
)

const lastModifiedLayout = "2006-01-02T15:04:05.000Z07:00"

// alarmRow is the persisted shape of an alarm. Booleans are stored as 0/1 and nested
// values as JSON text.
type alarmRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	RingHours    int    `gorm:"not null"`
	RingMins     int    `gorm:"not null"`
	Repeat       int    `gorm:"not null"`
	RepeatDays   string `gorm:"not null"`
	Vibrate      int    `gorm:"not null"`
	Ringtone     string `gorm:"not null"`
	Puzzles      string `gorm:"not null"`
	BoosterSet   string `gorm:"not null"`
	Enabled      int    `gorm:"not null;index"`
	LastModified string `gorm:"not null"`
}

func (alarmRow) TableName() string {
	return "alarms"
}

type alarmRepository struct {
	db *gorm.DB
}

func NewAlarmRepository(db *gorm.DB) domain.AlarmRepository {
	return &alarmRepository{
		db: db,
	}
}

func (r *alarmRepository) ListAlarms(ctx context.Context) ([]domain.Alarm, error) {
	var rows []alarmRow
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}

	return decodeRows(ctx, rows), nil
}

func (r *alarmRepository) ListEnabledAlarms(ctx context.Context) ([]domain.Alarm, error) {
	var rows []alarmRow
	if err := r.db.WithContext(ctx).Where("enabled = ?", 1).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list enabled alarms: %w", err)
	}

	return decodeRows(ctx, rows), nil
}

func (r *alarmRepository) SaveAlarms(ctx context.Context, alarms []domain.Alarm) error {
	if len(alarms) == 0 {
		return nil
	}

	rows := make([]alarmRow, 0, len(alarms))
	for _, a := range alarms {
		row, err := encodeRow(a)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("failed to save alarm %s: %w", rows[i].ID, err)
			}
		}
		return nil
	})
}

func (r *alarmRepository) DeleteAlarm(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&alarmRow{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete alarm %s: %w", id, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeRow(a domain.Alarm) (alarmRow, error) {
	if err := a.Validate(); err != nil {
		return alarmRow{}, err
	}

	repeatDays, err := json.Marshal(a.RepeatDays)
	if err != nil {
		return alarmRow{}, ErrInvalidAlarmData
	}
	ringtone, err := json.Marshal(a.Ringtone)
	if err != nil {
		return alarmRow{}, ErrInvalidAlarmData
	}
	puzzles := a.Puzzles
	if puzzles == nil {
		puzzles = []domain.Puzzle{}
	}
	puzzlesJSON, err := json.Marshal(puzzles)
	if err != nil {
		return alarmRow{}, ErrInvalidAlarmData
	}
	boosters, err := json.Marshal(a.BoosterSet)
	if err != nil {
		return alarmRow{}, ErrInvalidAlarmData
	}

	return alarmRow{
		ID:           a.ID,
		Name:         a.Name,
		RingHours:    a.RingHours,
		RingMins:     a.RingMins,
		Repeat:       boolToInt(a.Repeat),
		RepeatDays:   string(repeatDays),
		Vibrate:      boolToInt(a.Vibrate),
		Ringtone:     string(ringtone),
		Puzzles:      string(puzzlesJSON),
		BoosterSet:   string(boosters),
		Enabled:      boolToInt(a.Enabled),
		LastModified: a.LastModified.UTC().Format(lastModifiedLayout),
	}, nil
}

func decodeRows(ctx context.Context, rows []alarmRow) []domain.Alarm {
	alarms := make([]domain.Alarm, 0, len(rows))
	for _, row := range rows {
		alarms = append(alarms, decodeRow(ctx, row))
	}
	return alarms
}

// decodeRow never fails. Fields that do not decode fall back to their defaults and the
// fallback is logged.
func decodeRow(ctx context.Context, row alarmRow) domain.Alarm {
	a := domain.Alarm{
		ID:         row.ID,
		Name:       row.Name,
		RingHours:  row.RingHours,
		RingMins:   row.RingMins,
		Repeat:     row.Repeat != 0,
		RepeatDays: domain.NewRepeatDays(),
		Vibrate:    row.Vibrate != 0,
		Ringtone:   domain.Ringtone{Name: domain.SilentRingtone},
		Puzzles:    []domain.Puzzle{},
		Enabled:    row.Enabled != 0,
	}

	warn := func(field string, err error) {
		slog.WarnContext(ctx, "invalid persisted alarm field, using default",
			slog.String("event", "alarm.decode.fallback"),
			slog.String("alarm_id", row.ID),
			slog.String("field", field),
			slog.String("error", err.Error()),
		)
	}

	if a.RingHours < 0 || a.RingHours > 23 || a.RingMins < 0 || a.RingMins > 59 {
		warn("ring_time", domain.ErrInvalidRingTime)
		a.RingHours, a.RingMins = domain.DefaultRingHours, domain.DefaultRingMins
	}

	var days []domain.RepeatDay
	if err := json.Unmarshal([]byte(row.RepeatDays), &days); err != nil {
		warn("repeat_days", err)
	} else if len(days) != domain.DaysPerWeek {
		warn("repeat_days", fmt.Errorf("%w: %d repeat days", ErrInvalidAlarmData, len(days)))
	} else {
		for i, d := range days {
			a.RepeatDays[i].Enabled = d.Enabled
			if d.Label != "" {
				a.RepeatDays[i].Label = d.Label
			}
		}
	}

	var ringtone domain.Ringtone
	if err := json.Unmarshal([]byte(row.Ringtone), &ringtone); err != nil || ringtone.Name == "" {
		if err == nil {
			err = fmt.Errorf("%w: empty ringtone name", ErrInvalidAlarmData)
		}
		warn("ringtone", err)
	} else {
		a.Ringtone = ringtone
	}

	var puzzles []domain.Puzzle
	if err := json.Unmarshal([]byte(row.Puzzles), &puzzles); err != nil {
		warn("puzzles", err)
	} else if puzzles != nil {
		a.Puzzles = puzzles
	}

	var boosters domain.BoosterSet
	if err := json.Unmarshal([]byte(row.BoosterSet), &boosters); err != nil {
		warn("booster_set", err)
	} else if err := boosters.Validate(); err != nil {
		warn("booster_set", err)
	} else {
		a.BoosterSet = boosters
	}

	if t, err := time.Parse(lastModifiedLayout, row.LastModified); err != nil {
		warn("last_modified", err)
	} else {
		a.LastModified = t
	}

	return a
}

// SQLiteOpener opens a fresh sqlite handle on every call.
type SQLiteOpener struct {
	path string
}

func NewSQLiteOpener(path string) *SQLiteOpener {
	return &SQLiteOpener{path: path}
}

func (o *SQLiteOpener) Open(ctx context.Context) (domain.AlarmStore, error) {
	return OpenSQLiteStore(ctx, o.path)
}

type SQLiteStore struct {
	domain.AlarmRepository
	db *gorm.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open alarm database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&alarmRow{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate alarm database: %w", err)
	}

	return &SQLiteStore{
		AlarmRepository: NewAlarmRepository(db),
		db:              db,
	}, nil
}

// DB exposes the underlying handle for health checks.
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Warn("failed to close alarm database", slog.String("error", err.Error()))
	}
}
