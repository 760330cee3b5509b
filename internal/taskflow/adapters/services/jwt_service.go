package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/services"
	svc "taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"
	msgGeneratingToken  = "generating token"
	msgValidatingToken  = "validating token"
	msgTokenGenerated   = "token generated successfully"
	msgTokenValidated   = "token validated successfully"
	msgTokenRejected    = "token rejected"
	msgEmptySecret      = "empty secret key provided"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm - токен подписан неожиданным алгоритмом.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - полезная нагрузка токена в формате библиотеки JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает сервис токенов.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
		now: time.Now,
	}
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

// GenerateToken выпускает токен для пользователя.
func (s *ServiceJWT) GenerateToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty user id", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(services.JWTClaims{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateToken проверяет подпись и срок действия и возвращает ID пользователя.
// Любая причина отказа сводится к services.ErrInvalidJWTToken.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	if len(s.config.SecretKey) == 0 || tokenString == "" {
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgTokenRejected)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
