package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/taskflow/domain/services"
	svc "taskflow/internal/taskflow/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
	errMsgPasswordTooShort     = "password is too short"
	errMsgPasswordTooLong      = "password is too long"
)

// ServiceBcrypt реализует PasswordService на bcrypt. Соль генерируется для каждого хэша.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис bcrypt. Стоимость ниже bcrypt.MinCost заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Cost возвращает рабочий фактор bcrypt.
func (s *ServiceBcrypt) Cost() int {
	return s.cost
}

// Hash хэширует пароль.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}
	if len(password) < services.MinPasswordLength {
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooShort, services.ErrInvalidPassword)
	}
	if len(password) > services.MaxPasswordLength {
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooLong, services.ErrInvalidPassword)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}

// Verify сравнивает пароль с хэшем. Несовпадение не является ошибкой.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}
	// bcrypt сравнивает только первые 72 байта, такой пароль не мог быть захэширован.
	if len(password) > services.MaxPasswordLength {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
