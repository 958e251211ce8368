package chrono

import (
	"sync"
	"time"
)

// FakeImpl is an API whose clock only moves when After is called, After
// returns immediately having advanced the clock by the requested duration.
type FakeImpl struct {
	mutex   sync.Mutex
	current time.Time
	waits   []time.Duration
}

func NewFakeImpl(start time.Time) *FakeImpl {
	return &FakeImpl{current: start}
}

func (f *FakeImpl) Now() time.Time {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.current
}

func (f *FakeImpl) After(d time.Duration) <-chan time.Time {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.current = f.current.Add(d)
	f.waits = append(f.waits, d)

	out := make(chan time.Time, 1)
	out <- f.current
	return out
}

func (f *FakeImpl) Location() *time.Location {
	return f.current.Location()
}

// Waits returns every duration After was called with.
func (f *FakeImpl) Waits() []time.Duration {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]time.Duration(nil), f.waits...)
}
