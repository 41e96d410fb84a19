package mirror

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
)

// Memory keeps the last snapshot in process. Snapshots are stored encoded so
// callers never share slices with the mirror.
type Memory struct {
	mu      sync.Mutex
	payload []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, snapshot pos.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.payload = payload
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(_ context.Context) (*pos.Snapshot, error) {
	m.mu.Lock()
	payload := m.payload
	m.mu.Unlock()
	if payload == nil {
		return nil, ErrSnapshotNotFound
	}
	var snapshot pos.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
