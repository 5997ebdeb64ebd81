// Package clock abstracts time for deterministic tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant that tests advance explicitly.
type MockClock struct {
	NowTime time.Time
}

func (m *MockClock) Now() time.Time {
	return m.NowTime
}

func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}
