package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBreakerStartsClosed(t *testing.T) {
	b := New("simulering")
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.Equal(t, "simulering", b.Name())
	assert.True(t, b.Allow())
}

// Each outcome is 'f' for failure or 's' for success.
func TestBreakerSequences(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		success  int
		outcomes string
		wantOpen bool
	}{
		{name: "below failure threshold", failures: 3, success: 2, outcomes: "ff", wantOpen: false},
		{name: "opens at threshold", failures: 3, success: 2, outcomes: "fff", wantOpen: true},
		{name: "success resets failure count", failures: 3, success: 2, outcomes: "ffsff", wantOpen: false},
		{name: "opens after reset count", failures: 3, success: 2, outcomes: "ffsfff", wantOpen: true},
		{name: "one success is not enough to close", failures: 1, success: 2, outcomes: "fs", wantOpen: true},
		{name: "closes at success threshold", failures: 1, success: 2, outcomes: "fss", wantOpen: false},
		{name: "failure while open resets success count", failures: 1, success: 3, outcomes: "fssfss", wantOpen: true},
		{name: "closes after full run of successes", failures: 1, success: 3, outcomes: "fssfsss", wantOpen: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("simulering", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.success))
			for _, o := range tt.outcomes {
				if o == 'f' {
					b.RecordFailure()
				} else {
					b.RecordSuccess()
				}
			}
			assert.Equal(t, tt.wantOpen, b.IsOpen())
		})
	}
}

func TestBreakerReportsTransitionsOnce(t *testing.T) {
	b := New("simulering", WithFailureThreshold(1), WithSuccessThreshold(1))

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened, "already open")

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.False(t, change.Closed, "already closed")
}

func TestBreakerReset(t *testing.T) {
	b := New("simulering", WithFailureThreshold(1))
	b.RecordFailure()
	assert.Equal(t, "open", b.State().String())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerAllowsProbeAfterCooldown(t *testing.T) {
	now := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)
	b := New("simulering", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(59 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow())
	assert.True(t, b.IsOpen(), "a probe does not close the circuit")
}
