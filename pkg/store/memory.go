package store

import (
	"context"
	"sync"

	"tableflip.dev/timelined/pkg/period"
)

// Memory keeps the encoded list in process. It goes through the same codec as
// the disk backends so round trips behave identically.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]*period.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Unmarshal(m.data)
}

func (m *Memory) Save(_ context.Context, periods []*period.Period) error {
	data, err := Marshal(periods)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Raw returns the last saved payload.
func (m *Memory) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// SetRaw replaces the stored payload verbatim, for example with corrupt data.
func (m *Memory) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Saves counts calls to Save.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
