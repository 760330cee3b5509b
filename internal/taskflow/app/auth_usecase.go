// Package app содержит сценарии использования сервиса taskflow.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/repositories"
	svc "taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"
	methodIssue    = "issueToken"

	msgStartRegistration   = "starting user registration"
	msgInvalidEmailFormat  = "invalid email format"
	msgEmptyName           = "empty name provided"
	msgInvalidPassword     = "invalid password"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgTokenIssued         = "authentication token issued"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate token"
	msgErrDummyHash         = "failed to prepare dummy password hash"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingName     = "validating name"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingToken    = "generating token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
)

// dummyPassword хэшируется один раз, чтобы вход с неизвестным email
// выполнял ту же работу bcrypt, что и вход с неверным паролем.
const dummyPassword = "taskflow-dummy-password" //nolint:gosec

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает пользователя и сразу выдает ему токен.
func (a *AuthUseCaseImpl) Register(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if name == "" {
		log.Debug(ctx, msgEmptyName)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if err := validatePassword(password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	// Параллельная регистрация с тем же email отсекается уникальным индексом.
	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	return a.issueToken(ctx, createdUser)
}

// Login аутентифицирует пользователя по email и паролю.
// Неизвестный email и неверный пароль дают одну и ту же ошибку.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.verifyDummy(ctx, password)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	return a.issueToken(ctx, user)
}

// verifyDummy сравнивает пароль с заранее вычисленным хэшем, результат не используется.
func (a *AuthUseCaseImpl) verifyDummy(ctx context.Context, password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.passwordSvc.Hash(ctx, dummyPassword)
		if err != nil {
			logger.Log(ctx).Warn(ctx, msgErrDummyHash, zap.Error(err))
			return
		}
		a.dummyHash = hash
	})
	if a.dummyHash == "" {
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, a.dummyHash)
}

func (a *AuthUseCaseImpl) issueToken(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", user.ID))

	token, expiresAt, err := a.tokenSvc.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return &services.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}
	if len(password) > services.MaxPasswordLength {
		return entities.ErrPasswordTooLong
	}
	return nil
}
