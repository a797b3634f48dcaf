package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowState_RollAndIncrement(t *testing.T) {
	var w WindowState

	assert.Equal(t, uint(1), w.rollAndIncrement(baseTime, time.Minute))
	assert.Equal(t, baseTime.Add(time.Minute), w.ResetAt)

	assert.Equal(t, uint(2), w.rollAndIncrement(baseTime.Add(30*time.Second), time.Minute))
	assert.Equal(t, baseTime.Add(time.Minute), w.ResetAt, "reset must not move inside the window")

	// Rolling: the new window starts at the triggering request
	later := baseTime.Add(90 * time.Second)
	assert.Equal(t, uint(1), w.rollAndIncrement(later, time.Minute))
	assert.Equal(t, later.Add(time.Minute), w.ResetAt)
}

func TestWindowState_RetryAfterSeconds(t *testing.T) {
	w := WindowState{ResetAt: baseTime.Add(time.Minute)}

	tests := []struct {
		name string
		now  time.Time
		want uint
	}{
		{"full window", baseTime, 60},
		{"rounds up fractions", baseTime.Add(500 * time.Millisecond), 60},
		{"one second left", baseTime.Add(59 * time.Second), 1},
		{"sub-second left", baseTime.Add(59*time.Second + 999*time.Millisecond), 1},
		{"at reset", baseTime.Add(time.Minute), 1},
		{"past reset", baseTime.Add(2 * time.Minute), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.retryAfterSeconds(tt.now))
		})
	}
}

func TestBucket_Expired(t *testing.T) {
	b := Bucket{
		Short: WindowState{Count: 3, ResetAt: baseTime.Add(time.Minute)},
		Long:  WindowState{Count: 3, ResetAt: baseTime.Add(time.Hour)},
	}

	assert.False(t, b.expired(baseTime))
	assert.False(t, b.expired(baseTime.Add(2*time.Minute)))
	assert.True(t, b.expired(baseTime.Add(2*time.Hour)))
	assert.True(t, (&Bucket{}).expired(baseTime))
}
