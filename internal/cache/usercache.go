package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Spok95/community-bot/internal/domain/users"
)

// UserCache — слепок {имя, состояние, роль} по user_id, чтобы не ходить
// в БД на каждый апдейт. Истина всегда в БД; слепок живёт не дольше TTL
// и сбрасывается явно при смене роли. Все мутации идут под одним мьютексом,
// иначе Clear, попавший внутрь read-modify-write в UpdateState, воскресит
// устаревший слепок.
type UserCache struct {
	mu      sync.Mutex
	entries *gocache.Cache
}

func NewUserCache(ttl time.Duration) *UserCache {
	return &UserCache{entries: gocache.New(ttl, 2*ttl)}
}

func (c *UserCache) Get(userID int64) (users.User, bool) {
	if v, ok := c.entries.Get(key(userID)); ok {
		return v.(users.User), true
	}
	return users.User{}, false
}

func (c *UserCache) Set(u users.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.SetDefault(key(u.ID), u)
}

// UpdateState меняет только поле состояния; если записи нет — ничего не
// делает, вызывающий обязан положить полный слепок через Set.
func (c *UserCache) UpdateState(userID int64, state users.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries.Get(key(userID))
	if !ok {
		return
	}
	u := v.(users.User)
	u.State = state
	c.entries.SetDefault(key(userID), u)
}

func (c *UserCache) Clear(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Delete(key(userID))
}
