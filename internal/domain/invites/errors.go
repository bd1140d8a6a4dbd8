package invites

import (
	"errors"
	"fmt"
)

// Доменные ошибки погашения. Каждая из них (кроме ErrTooManyAttempts)
// засчитывается лимитеру как одна неудачная попытка; ошибки хранилища —
// нет, это не подбор кода.
var (
	ErrNotFound        = errors.New("invite not found")
	ErrAlreadyUsed     = errors.New("invite already used")
	ErrAlreadyElevated = errors.New("role already elevated")
	ErrTooManyAttempts = errors.New("too many attempts")

	// Оба варианта различимы для текстов, но errors.Is(err,
	// ErrAlreadyElevated) ловит их одинаково.
	ErrAlreadySuperadmin = fmt.Errorf("%w: superadmin", ErrAlreadyElevated)
	ErrAlreadyAdmin      = fmt.Errorf("%w: admin", ErrAlreadyElevated)
)

// isGuessFailure — считать ли ошибку неудачной попыткой подбора.
func isGuessFailure(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyUsed) ||
		errors.Is(err, ErrAlreadyElevated)
}
