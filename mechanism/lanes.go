package mechanism

import "time"

// Debounce suppresses repeat triggers per key inside a window
// Suppressed triggers do not extend the window
type Debounce struct {
	window time.Duration
	last   map[string]time.Duration
}

func NewDebounce(window time.Duration) *Debounce {
	return &Debounce{window: window, last: make(map[string]time.Duration)}
}

// Allow reports whether key may fire at now, and records it when so
func (d *Debounce) Allow(key string, now time.Duration) bool {
	if t, ok := d.last[key]; ok && now-t < d.window {
		return false
	}
	d.last[key] = now
	return true
}

// Reset forgets all keys
func (d *Debounce) Reset() {
	clear(d.last)
}
