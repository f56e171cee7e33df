package status_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"bayleaf/shared/failure"
	"bayleaf/shared/status"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Lifecycle(t *testing.T) {
	var tracker status.Tracker

	assert.False(t, tracker.Loading())

	finish := tracker.Start()
	assert.True(t, tracker.Loading())

	finish(errors.New("insert rejected"))
	assert.False(t, tracker.Loading())
	assert.Equal(t, "insert rejected", tracker.Err())

	finish(nil)
	assert.Equal(t, status.Snapshot{Loading: false, Error: "insert rejected", Code: http.StatusInternalServerError}, tracker.Snapshot())

	tracker.Start()(nil)
	assert.Equal(t, status.Snapshot{}, tracker.Snapshot())
}

func TestTracker_Concurrent(t *testing.T) {
	var tracker status.Tracker
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			tracker.Start()(nil)
		}()
	}

	wg.Wait()

	assert.False(t, tracker.Loading())
}

func TestTracker_KeepsFailureCode(t *testing.T) {
	var tracker status.Tracker

	tracker.Start()(failure.Timeout("reservation submission timed out"))
	assert.Equal(t, http.StatusGatewayTimeout, tracker.Snapshot().Code)

	tracker.Start()(nil)
	assert.Zero(t, tracker.Snapshot().Code)
}
