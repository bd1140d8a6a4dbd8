package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Spok95/community-bot/internal/domain/users"
)

func snapshot(id int64) users.User {
	return users.User{
		ID:        id,
		FirstName: "Имя",
		Username:  "user",
		State:     users.DefaultState(),
		Role:      users.RoleAdmin,
	}
}

func TestSetGet(t *testing.T) {
	c := NewUserCache(time.Minute)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(snapshot(1))
	u, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, users.RoleAdmin, u.Role)
}

func TestUpdateStateKeepsOtherFields(t *testing.T) {
	c := NewUserCache(time.Minute)
	c.Set(snapshot(1))

	st := users.State{Name: users.StateConstAwaitText, EntityID: 7}
	c.UpdateState(1, st)

	u, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, st, u.State)
	assert.Equal(t, "Имя", u.FirstName)
	assert.Equal(t, users.RoleAdmin, u.Role)
}

func TestUpdateStateNoopWhenAbsent(t *testing.T) {
	c := NewUserCache(time.Minute)

	c.UpdateState(1, users.State{Name: users.StateTempAwaitName})
	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := NewUserCache(time.Minute)
	c.Set(snapshot(1))

	c.Clear(1)
	_, ok := c.Get(1)
	assert.False(t, ok)
}

// Clear и UpdateState, идущие параллельно, в любом порядке оставляют кэш
// пустым: либо UpdateState не находит запись, либо Clear удаляет результат.
func TestClearVersusUpdateState(t *testing.T) {
	c := NewUserCache(time.Minute)

	for i := 0; i < 200; i++ {
		c.Set(snapshot(1))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.UpdateState(1, users.State{Name: users.StateConstAwaitName})
		}()
		go func() {
			defer wg.Done()
			c.Clear(1)
		}()
		wg.Wait()

		_, ok := c.Get(1)
		assert.False(t, ok, "устаревший слепок не должен воскресать после Clear")
	}
}

func TestEntriesExpire(t *testing.T) {
	c := NewUserCache(20 * time.Millisecond)
	c.Set(snapshot(1))

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get(1)
	assert.False(t, ok, "после TTL запись должна пропасть")
}
