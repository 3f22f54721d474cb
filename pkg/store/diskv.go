package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/timelined/pkg/period"
)

// PeriodsKey is the single key holding the encoded period list.
const PeriodsKey = "timelined-periods"

// Diskv stores the list as one JSON blob under PeriodsKey.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	tmp := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			// Writes land in TempDir and are renamed into place, so a reader never
			// sees half a list.
			TempDir: tmp,
			// Other processes write the same key; reads always go to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory holding the store.
func (s *Diskv) BasePath() string {
	return s.basePath
}

func (s *Diskv) Load(_ context.Context) ([]*period.Period, error) {
	if !s.d.Has(PeriodsKey) {
		return []*period.Period{}, nil
	}
	val, err := s.d.Read(PeriodsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", PeriodsKey, err)
	}
	return Unmarshal(val)
}

func (s *Diskv) Save(_ context.Context, periods []*period.Period) error {
	data, err := Marshal(periods)
	if err != nil {
		return err
	}
	if err := s.d.Write(PeriodsKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", PeriodsKey, err)
	}
	return nil
}

// Path is the file holding the encoded list.
func (s *Diskv) Path() string {
	return filepath.Join(s.basePath, PeriodsKey)
}
