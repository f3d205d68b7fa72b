package internal_session

import (
	"sync"
	"testing"
	"time"

	"github.com/curavoice/pkg/commons"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	logger, _ := commons.NewApplicationLogger(commons.WithLevel("error"))
	return NewStore(logger)
}

func TestPutGetDelete(t *testing.T) {
	store := newTestStore(t)

	store.Put(&CallSession{PhoneNumber: "+15551234567", Language: "en", Status: StatusRequested})

	s, ok := store.Get("+15551234567")
	assert.True(t, ok)
	assert.Equal(t, StatusRequested, s.Status)
	assert.False(t, s.CreatedDate.IsZero())

	store.Delete("+15551234567")
	_, ok = store.Get("+15551234567")
	assert.False(t, ok)
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := newTestStore(t)
	store.Put(&CallSession{PhoneNumber: "+1555", Status: StatusRequested})

	s, _ := store.Get("+1555")
	s.Status = StatusFailed

	again, _ := store.Get("+1555")
	assert.Equal(t, StatusRequested, again.Status)
}

// A second request-callback for a number with a live session silently resets
// it. That is the preserved last-writer-wins behavior; this test pins it
// down so a future change is a conscious one.
func TestPutOverwritesActiveSession(t *testing.T) {
	store := newTestStore(t)

	store.Put(&CallSession{PhoneNumber: "+1555", HealthConcern: "fever", Status: StatusAwaitingRecording})
	store.Put(&CallSession{PhoneNumber: "+1555", HealthConcern: "", Status: StatusRequested})

	s, ok := store.Get("+1555")
	assert.True(t, ok)
	assert.Equal(t, StatusRequested, s.Status)
	assert.Empty(t, s.HealthConcern)
	assert.Equal(t, 1, store.Len())
}

func TestUpdateMissingSession(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.Update("+1555", func(s *CallSession) { s.Status = StatusFailed }))
}

func TestConcurrentDistinctKeys(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	numbers := []string{"+1", "+2", "+3", "+4", "+5", "+6", "+7", "+8"}
	for _, number := range numbers {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			store.Put(&CallSession{PhoneNumber: n, Status: StatusRequested})
			store.Update(n, func(s *CallSession) { s.Status = StatusConnected })
		}(number)
	}
	wg.Wait()

	assert.Equal(t, len(numbers), store.Len())
	for _, number := range numbers {
		s, ok := store.Get(number)
		assert.True(t, ok)
		assert.Equal(t, StatusConnected, s.Status)
	}
}

func TestConcurrentSameKeyNoLostUpdates(t *testing.T) {
	store := newTestStore(t)
	store.Put(&CallSession{PhoneNumber: "+1555", Status: StatusRequested})

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("+1555", func(s *CallSession) { s.CallID += "x" })
		}()
	}
	wg.Wait()

	s, _ := store.Get("+1555")
	assert.Len(t, s.CallID, writers)
}

func TestSweep(t *testing.T) {
	store := newTestStore(t)
	store.Put(&CallSession{PhoneNumber: "+old", Status: StatusAdviceDelivered})
	store.Put(&CallSession{PhoneNumber: "+new", Status: StatusRequested})

	// Age the first session by backdating its update stamp.
	store.Update("+old", func(s *CallSession) {})
	time.Sleep(10 * time.Millisecond)

	removed := store.Sweep(5 * time.Millisecond)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, store.Len())

	store.Put(&CallSession{PhoneNumber: "+fresh", Status: StatusRequested})
	assert.Equal(t, 0, store.Sweep(time.Hour))
	assert.Equal(t, 1, store.Len())
}

func TestSessionConcernImmutable(t *testing.T) {
	s := &CallSession{PhoneNumber: "+1555"}
	assert.False(t, s.HasConcern())

	s.SetConcern("I have a headache")
	s.SetConcern("something else")
	assert.Equal(t, "I have a headache", s.HealthConcern)
}
