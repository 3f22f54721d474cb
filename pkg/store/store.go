// Package store persists the period list. Every backend stores the whole list
// at once: Save overwrites whatever was there before.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/period"
)

// Persistence defines the persistence contract for the period list.
type Persistence interface {
	// Load returns the stored list, or an empty list when nothing was saved yet.
	Load(ctx context.Context) ([]*period.Period, error)
	// Save replaces the stored list with periods.
	Save(ctx context.Context, periods []*period.Period) error
}

// Watcher is implemented by backends that can report writes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// LoggingWatcher is a Watcher that reports watcher trouble to a caller
// supplied logger.
type LoggingWatcher interface {
	Watcher
	WatchWithLogger(ctx context.Context, log *zap.SugaredLogger) (<-chan Event, error)
}

// Close releases p when the backend holds resources such as a database handle.
func Close(p Persistence) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ErrCorrupt marks stored state that exists but cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt period data")

// Marshal encodes the list in its wire form: a JSON array of periods.
func Marshal(periods []*period.Period) ([]byte, error) {
	out := make([]*period.Period, 0, len(periods))
	for _, p := range periods {
		if p == nil {
			continue
		}
		cp := p.Clone()
		if cp.Schedule == nil {
			cp.Schedule = []period.Task{}
		}
		out = append(out, cp)
	}
	return json.Marshal(out)
}

// Unmarshal decodes the wire form. Empty input decodes to an empty list.
func Unmarshal(data []byte) ([]*period.Period, error) {
	if len(data) == 0 {
		return []*period.Period{}, nil
	}
	var list []*period.Period
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	out := make([]*period.Period, 0, len(list))
	for i, p := range list {
		if p == nil {
			return nil, fmt.Errorf("%w: null period at index %d", ErrCorrupt, i)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("%w: period at index %d has no id", ErrCorrupt, i)
		}
		if p.Schedule == nil {
			p.Schedule = []period.Task{}
		}
		out = append(out, p)
	}
	return out, nil
}
