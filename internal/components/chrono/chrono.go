package chrono

import "time"

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	// After waits for the duration to elapse and then sends the current time on
	// the returned channel, like time.After.
	After(d time.Duration) <-chan time.Time
	// Location is the timezone the portal operates in.
	Location() *time.Location
}

// StandardImpl is the standard implementation of API using the standard library.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl is the constructor of StandardImpl, the portal lives in
// chilean time so that is what timestamps (ex. debug dump names) are rendered in.
func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("America/Santiago")
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}
