package identity

import (
	"context"
	"log/slog"

	"github.com/Spok95/community-bot/internal/cache"
	"github.com/Spok95/community-bot/internal/domain/users"
)

// store — нужный резолверу срез users.Repo.
type store interface {
	GetByID(ctx context.Context, userID int64) (*users.User, error)
	EnsureDefault(ctx context.Context, id users.Identity) (*users.User, error)
	UpdateState(ctx context.Context, userID int64, state users.State) error
}

// Resolver отвечает на «кто этот пользователь, какая у него роль и на
// каком он шаге диалога». Сначала кэш, при промахе — БД с заполнением
// кэша. При нескольких репликах слепок может отставать до TTL — это
// принятое ограничение.
type Resolver struct {
	store store
	cache *cache.UserCache
	log   *slog.Logger
}

func NewResolver(s store, c *cache.UserCache, log *slog.Logger) *Resolver {
	return &Resolver{store: s, cache: c, log: log}
}

// Resolve возвращает nil, nil для незнакомого пользователя.
func (r *Resolver) Resolve(ctx context.Context, userID int64) (*users.User, error) {
	if u, ok := r.cache.Get(userID); ok {
		return &u, nil
	}

	u, err := r.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	r.cache.Set(*u)
	return u, nil
}

// Ensure регистрирует пользователя при первом контакте (роль default)
// и кладёт слепок в кэш.
func (r *Resolver) Ensure(ctx context.Context, id users.Identity) (*users.User, error) {
	if u, ok := r.cache.Get(id.ID); ok {
		return &u, nil
	}

	u, err := r.store.EnsureDefault(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(*u)
	return u, nil
}

// UpdateState пишет состояние сквозь кэш: сначала БД, затем слепок.
// Если слепка нет — подтягиваем свежую запись целиком.
func (r *Resolver) UpdateState(ctx context.Context, userID int64, state users.State) error {
	if err := r.store.UpdateState(ctx, userID, state); err != nil {
		return err
	}

	if _, ok := r.cache.Get(userID); ok {
		r.cache.UpdateState(userID, state)
		return nil
	}
	u, err := r.store.GetByID(ctx, userID)
	if err != nil {
		// состояние в БД уже записано, кэш догонится на следующем чтении
		r.log.Warn("cache refresh failed", "err", err, "user_id", userID)
		return nil
	}
	if u == nil {
		return nil
	}
	r.cache.Set(*u)
	return nil
}
