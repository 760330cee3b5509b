package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/cache"
	"taskflow/internal/taskflow/ports/repositories"
	svc "taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"
	methodAuthenticate   = "Authenticate"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgProfileFromCache    = "user profile served from cache"
	msgCacheReadFailed     = "user cache read failed, falling back to store"
	msgCacheWriteFailed    = "user cache write failed"
	msgTokenRejected       = "token rejected"
	msgTokenOwnerMissing   = "token refers to a missing user"

	msgErrFindingUserByID = "failed to find user by ID"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"
	errCtxValidatingToken  = "validating token"
	errCtxResolvingUser    = "resolving token owner"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo  repositories.UserRepository
	tokenSvc  svc.TokenService
	userCache cache.UserCache
}

// NewUserUseCase создает новый экземпляр сервиса пользователя. userCache может быть nil.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	tokenSvc svc.TokenService,
	userCache cache.UserCache,
) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:  userRepo,
		tokenSvc:  tokenSvc,
		userCache: userCache,
	}
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if u.userCache != nil {
		cached, err := u.userCache.Get(ctx, userID)
		switch {
		case err != nil:
			log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		case cached != nil:
			log.Debug(ctx, msgProfileFromCache)
			return cached, nil
		}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgErrFindingUserByID, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	if u.userCache != nil {
		if err := u.userCache.Set(ctx, user); err != nil {
			log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		}
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}

// Authenticate проверяет токен и возвращает его владельца.
// Недействительный токен и отсутствующий пользователь дают services.ErrUnauthenticated.
func (u *UserUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	userID, err := u.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrUnauthenticated, err)
	}

	user, err := u.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, entities.ErrEmptyUserID) {
			log.Debug(ctx, msgTokenOwnerMissing, zap.String("userID", userID))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, services.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}

	return user, nil
}
