// Package status tracks whether a service call is in flight and the last failure it saw.
package status

import (
	"sync"

	"bayleaf/shared/failure"
)

// Snapshot carries the raw error text for logs and staff tooling. Code is the HTTP status
// the error maps to and is what public endpoints should expose.
type Snapshot struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Tracker is safe for concurrent use. Loading stays true while at least one call is running.
type Tracker struct {
	mu       sync.RWMutex
	inFlight int
	lastErr  string
	lastCode int
}

// Start marks a call as running and clears the previous error.
// The returned func must be called exactly once with the call's result.
func (t *Tracker) Start() func(err error) {
	t.mu.Lock()
	t.inFlight++
	t.lastErr = ""
	t.lastCode = 0
	t.mu.Unlock()

	var once sync.Once

	return func(err error) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			t.inFlight--
			if err != nil {
				t.lastErr = err.Error()
				t.lastCode = failure.GetCode(err)
			}
		})
	}
}

func (t *Tracker) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.inFlight > 0
}

func (t *Tracker) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.lastErr
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Snapshot{Loading: t.inFlight > 0, Error: t.lastErr, Code: t.lastCode}
}
