package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tableflip.dev/timelined/pkg/period"
)

// SQLiteFile is the database file name created under the configured path.
const SQLiteFile = "timelined.sqlite"

type periodRow struct {
	ID        string    `gorm:"primaryKey"`
	Position  int       `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Month     int       `gorm:"not null"`
	Year      int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	Tasks     []taskRow `gorm:"foreignKey:PeriodID;constraint:OnDelete:CASCADE"`
}

func (periodRow) TableName() string { return "periods" }

type taskRow struct {
	ID        string `gorm:"primaryKey"`
	PeriodID  string `gorm:"index;not null"`
	Position  int    `gorm:"not null"`
	Name      string `gorm:"not null"`
	StartTime string `gorm:"not null"`
	EndTime   string `gorm:"not null"`
	DayOfWeek int    `gorm:"not null"`
}

func (taskRow) TableName() string { return "tasks" }

// SQLite stores the list in an embedded database, one row per period and task.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens the database file SQLiteFile inside dir and migrates the
// schema. dir ":memory:" opens a private in-memory database.
func NewSQLite(dir string) (*SQLite, error) {
	if dir == "" {
		return nil, errors.New("store: sqlite path required")
	}
	dsn := dir
	if dir != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure sqlite dir: %w", err)
		}
		dsn = filepath.Join(dir, SQLiteFile)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One writer, one connection; this also keeps the pragma below in effect.
	sqlDB.SetMaxOpenConns(1)
	// Cascades need foreign keys, which sqlite leaves off per connection.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("store: enable foreign keys: %w", err)
	}
	if err := db.AutoMigrate(&periodRow{}, &taskRow{}); err != nil {
		return nil, fmt.Errorf("store: migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) ([]*period.Period, error) {
	var rows []periodRow
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: load periods: %w", err)
	}

	out := make([]*period.Period, 0, len(rows))
	for _, r := range rows {
		p := &period.Period{
			ID:        r.ID,
			Name:      r.Name,
			Month:     r.Month,
			Year:      r.Year,
			CreatedAt: period.Timestamp{Time: r.CreatedAt},
			Schedule:  make([]period.Task, 0, len(r.Tasks)),
		}
		for _, t := range r.Tasks {
			p.Schedule = append(p.Schedule, period.Task{
				ID:        t.ID,
				Name:      t.Name,
				StartTime: t.StartTime,
				EndTime:   t.EndTime,
				DayOfWeek: t.DayOfWeek,
			})
		}
		out = append(out, p)
	}
	return out, nil
}

// Save replaces both tables inside one transaction.
func (s *SQLite) Save(ctx context.Context, periods []*period.Period) error {
	rows := make([]periodRow, 0, len(periods))
	for i, p := range periods {
		if p == nil {
			continue
		}
		r := periodRow{
			ID:        p.ID,
			Position:  i,
			Name:      p.Name,
			Month:     p.Month,
			Year:      p.Year,
			CreatedAt: p.CreatedAt.Time.Truncate(time.Millisecond),
		}
		for j, t := range p.Schedule {
			r.Tasks = append(r.Tasks, taskRow{
				ID:        t.ID,
				PeriodID:  p.ID,
				Position:  j,
				Name:      t.Name,
				StartTime: t.StartTime,
				EndTime:   t.EndTime,
				DayOfWeek: t.DayOfWeek,
			})
		}
		rows = append(rows, r)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&taskRow{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&periodRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("store: save periods: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
