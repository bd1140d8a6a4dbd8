package cache

import (
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type attemptEntry struct {
	count int
	last  time.Time
}

// AttemptLimiter считает неудачные попытки ввода кода по пользователю.
// Счётчик живёт только в памяти процесса: при нескольких репликах у
// каждой свой лимит — это осознанное ограничение, а не баг.
type AttemptLimiter struct {
	mu         sync.Mutex
	entries    *gocache.Cache
	resetAfter time.Duration

	now func() time.Time // подменяется в тестах
}

// NewAttemptLimiter: resetAfter — окно, после которого счётчик начинается
// заново; ttl — страховочное время жизни записи целиком.
func NewAttemptLimiter(resetAfter, ttl time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		entries:    gocache.New(ttl, ttl),
		resetAfter: resetAfter,
		now:        time.Now,
	}
}

// Record фиксирует попытку: +1 к счётчику, либо 1 заново, если с прошлой
// попытки прошло больше resetAfter. Возвращает новый счётчик и время
// предыдущей попытки.
func (l *AttemptLimiter) Record(userID int64) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	count, last := 0, now
	if v, ok := l.entries.Get(key(userID)); ok {
		e := v.(attemptEntry)
		count, last = e.count, e.last
	}
	if now.Sub(last) > l.resetAfter {
		count = 0
	}
	count++
	l.entries.SetDefault(key(userID), attemptEntry{count: count, last: now})
	return count, last
}

// Get — текущий счётчик и время последней попытки; (0, now) если записи нет.
func (l *AttemptLimiter) Get(userID int64) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.entries.Get(key(userID)); ok {
		e := v.(attemptEntry)
		return e.count, e.last
	}
	return 0, l.now()
}

func (l *AttemptLimiter) Reset(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
