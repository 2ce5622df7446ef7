//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/old-maid/internal/server/storage"
)

// MockStore 实现 storage.Store 的 mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Record(ctx context.Context, ev storage.GameEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockStore) History(ctx context.Context, room string, limit int64) ([]storage.GameEvent, error) {
	args := m.Called(ctx, room, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.GameEvent), args.Error(1)
}

func (m *MockStore) Stats(ctx context.Context, top int64) (*storage.Stats, error) {
	args := m.Called(ctx, top)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Stats), args.Error(1)
}

// RecordingStore 在内存中收集事件的 storage.Recorder，并发安全
type RecordingStore struct {
	mu     sync.Mutex
	events []storage.GameEvent
}

func (r *RecordingStore) Record(_ context.Context, ev storage.GameEvent) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	return nil
}

// Events 返回已记录事件的副本
func (r *RecordingStore) Events() []storage.GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]storage.GameEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds 按顺序返回已记录事件的类型
func (r *RecordingStore) Kinds() []storage.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]storage.EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}
