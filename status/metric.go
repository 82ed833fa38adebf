package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// MetricMap is a keyed set of metrics of type T
// Keys are kept sorted on insert so the debug overlay can walk them every frame
// without sorting; writers look a key up once and keep the pointer
type MetricMap[T any] struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, creating it if absent
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr

	i := sort.SearchStrings(m.keys, key)
	m.keys = append(m.keys, "")
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key
	return ptr
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range m.keys {
		fn(k, m.items[k])
	}
}

func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}

// AtomicFloat is a float64 gauge; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Max raises the gauge to val when val is larger and returns the result
func (f *AtomicFloat) Max(val float64) float64 {
	for {
		old := f.bits.Load()
		if cur := math.Float64frombits(old); val <= cur {
			return cur
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(val)) {
			return val
		}
	}
}

// MaxLabelLen bounds labels shown in the debug overlay
const MaxLabelLen = 24

// AtomicString is a short label readable from any goroutine
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, cut to MaxLabelLen runes
func (s *AtomicString) Store(val string) {
	if r := []rune(val); len(r) > MaxLabelLen {
		val = string(r[:MaxLabelLen])
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
