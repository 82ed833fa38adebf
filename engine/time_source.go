package engine

import (
	"sync"
	"time"
)

// TimeSource is the wall-clock seam read by the frame runner and the input latches
type TimeSource interface {
	Now() time.Time
}

// MonotonicTimeProvider reads time.Now, which carries a monotonic reading
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a TimeSource moved by hand in tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps to t, backwards included
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

var (
	_ TimeSource = (*MonotonicTimeProvider)(nil)
	_ TimeSource = (*MockTimeProvider)(nil)
)
