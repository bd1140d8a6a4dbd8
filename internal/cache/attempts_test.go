package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordIncrements(t *testing.T) {
	l := NewAttemptLimiter(5*time.Minute, time.Hour)

	count, _ := l.Record(1)
	assert.Equal(t, 1, count)

	count, _ = l.Record(1)
	assert.Equal(t, 2, count)

	// другой пользователь — свой счётчик
	count, _ = l.Record(2)
	assert.Equal(t, 1, count)
}

func TestRecordResetsAfterWindow(t *testing.T) {
	l := NewAttemptLimiter(5*time.Minute, time.Hour)

	base := time.Now()
	l.now = func() time.Time { return base }

	count, _ := l.Record(1)
	assert.Equal(t, 1, count)
	count, _ = l.Record(1)
	assert.Equal(t, 2, count)

	// окно сброса прошло — счёт начинается заново
	l.now = func() time.Time { return base.Add(6 * time.Minute) }
	count, prev := l.Record(1)
	assert.Equal(t, 1, count)
	assert.Equal(t, base, prev)
}

func TestGetDefaultsWhenAbsent(t *testing.T) {
	l := NewAttemptLimiter(5*time.Minute, time.Hour)

	before := time.Now()
	count, last := l.Get(99)
	assert.Equal(t, 0, count)
	assert.False(t, last.Before(before))
}

func TestReset(t *testing.T) {
	l := NewAttemptLimiter(5*time.Minute, time.Hour)

	l.Record(1)
	l.Record(1)
	l.Reset(1)

	count, _ := l.Get(1)
	assert.Equal(t, 0, count)
}

func TestEntriesExpireByTTL(t *testing.T) {
	l := NewAttemptLimiter(5*time.Minute, 20*time.Millisecond)

	l.Record(1)
	time.Sleep(40 * time.Millisecond)

	count, _ := l.Get(1)
	assert.Equal(t, 0, count)
}
