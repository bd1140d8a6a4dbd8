package invites

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/Spok95/community-bot/internal/cache"
	"github.com/Spok95/community-bot/internal/config"
	"github.com/Spok95/community-bot/internal/domain/users"
)

// Store — транзакционная граница хранилища для менеджера. Все вызовы
// внутри fn идут в одной транзакции: commit при nil, rollback при ошибке.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	AddInvite(ctx context.Context, inv Invite) error
	InviteByCode(ctx context.Context, code string) (*Invite, error)
	UserByID(ctx context.Context, userID int64) (*users.User, error)
	UpsertUserRole(ctx context.Context, id users.Identity, role users.Role) (*users.User, error)
	MarkInviteUsed(ctx context.Context, code string, usedByID int64, usedByName string) (bool, error)
}

// Manager — единственный компонент, который создаёт и гасит инвайты.
type Manager struct {
	store   Store
	limiter *cache.AttemptLimiter
	users   *cache.UserCache
	cfg     config.Invites
	log     *slog.Logger

	now func() time.Time
}

func NewManager(store Store, limiter *cache.AttemptLimiter, uc *cache.UserCache,
	cfg config.Invites, log *slog.Logger) *Manager {

	return &Manager{
		store:   store,
		limiter: limiter,
		users:   uc,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Generate выписывает новый код на роль admin или superadmin. Право
// выписывать проверяет вызывающий слой — здесь только создание записи.
func (m *Manager) Generate(ctx context.Context, creator users.Identity, role users.Role) (string, error) {
	suffix, err := randomCode(m.cfg.CodeLength)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := m.cfg.CodePrefix + suffix

	err = m.store.InTx(ctx, func(tx Tx) error {
		return tx.AddInvite(ctx, Invite{
			Code:       code,
			WasUsed:    false,
			Role:       role,
			MadeByID:   creator.ID,
			MadeByName: creator.DisplayName(),
		})
	})
	if err != nil {
		return "", fmt.Errorf("store invite: %w", err)
	}

	m.log.Info("invite issued", "role", role, "made_by", creator.ID)
	return code, nil
}

// Use гасит код и повышает роль. Вся проверка и оба апдейта (роль
// пользователя + пометка кода) идут в одной транзакции; пометка кода —
// условная, так что из двух гонящихся за одним кодом выигрывает ровно
// один, второй получает ErrAlreadyUsed.
func (m *Manager) Use(ctx context.Context, code string, user users.Identity) (users.Role, error) {
	if err := m.checkAttempts(user.ID); err != nil {
		return "", err
	}

	var granted users.Role
	err := m.store.InTx(ctx, func(tx Tx) error {
		inv, err := tx.InviteByCode(ctx, code)
		if err != nil {
			return err
		}
		if inv == nil {
			m.log.Warn("invalid code attempt", "user_id", user.ID)
			return ErrNotFound
		}

		current, err := tx.UserByID(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := validateUsage(inv, current); err != nil {
			return err
		}

		if _, err := tx.UpsertUserRole(ctx, user, inv.Role); err != nil {
			return err
		}
		ok, err := tx.MarkInviteUsed(ctx, code, user.ID, user.DisplayName())
		if err != nil {
			return err
		}
		if !ok {
			// код погасили параллельно, нашу выдачу роли откатит транзакция
			return ErrAlreadyUsed
		}

		granted = inv.Role
		return nil
	})
	if err != nil {
		// единственная точка учёта неудачных попыток
		if isGuessFailure(err) {
			m.limiter.Record(user.ID)
		}
		return "", err
	}

	m.users.Clear(user.ID)
	m.log.Info("invite redeemed", "role", granted, "user_id", user.ID)
	return granted, nil
}

// Remaining — сколько попыток осталось до блокировки.
func (m *Manager) Remaining(userID int64) int {
	count, _ := m.limiter.Get(userID)
	if left := m.cfg.MaxAttempts - count; left > 0 {
		return left
	}
	return 0
}

// checkAttempts блокирует погашение после MaxAttempts неудач, пока не
// пройдёт BlockTime с последней попытки; по истечении — счётчик чистится
// и погашение идёт обычным порядком.
func (m *Manager) checkAttempts(userID int64) error {
	count, last := m.limiter.Get(userID)
	if count < m.cfg.MaxAttempts {
		return nil
	}
	if m.now().Sub(last) < m.cfg.BlockTime {
		return ErrTooManyAttempts
	}
	m.limiter.Reset(userID)
	return nil
}

// validateUsage — проверки по порядку, падаем на первой. owner и
// superadmin здесь один потолок: им код не нужен в обоих случаях.
func validateUsage(inv *Invite, current *users.User) error {
	if inv.WasUsed {
		return ErrAlreadyUsed
	}
	if current != nil && current.Role.Meets(users.RoleSuperadmin) {
		return ErrAlreadySuperadmin
	}
	if current != nil && current.Role == users.RoleAdmin && inv.Role == users.RoleAdmin {
		return ErrAlreadyAdmin
	}
	return nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode — криптослучайный суффикс фиксированной длины.
func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
