// Package resilience содержит механизмы обеспечения отказоустойчивости
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker не пропускает запрос.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// StateObserver получает состояние Circuit Breaker при каждом переходе.
type StateObserver interface {
	SetBreakerState(name string, state float64)
}

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число подряд идущих ошибок до размыкания.
	ErrorThreshold uint32
	// Timeout - время в разомкнутом состоянии до пробного запроса.
	Timeout time.Duration
	// HalfOpenRequests - число пробных запросов в полуоткрытом состоянии.
	HalfOpenRequests uint32
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		HalfOpenRequests: 2,
	}
}

// CircuitBreaker оборачивает gobreaker и переводит его ошибки в ErrCircuitOpen.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig, observer StateObserver) *CircuitBreaker {
	threshold := config.ErrorThreshold
	if threshold == 0 {
		threshold = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: config.HalfOpenRequests,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Log(context.Background()).Info(context.Background(), LogCircuitStateChange,
				zap.String("circuit_breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if observer != nil {
				observer.SetBreakerState(name, float64(to))
			}
		},
	}

	if observer != nil {
		observer.SetBreakerState(name, float64(gobreaker.StateClosed))
	}

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute выполняет функцию с защитой Circuit Breaker.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", b.cb.Name()))
		return ErrCircuitOpen
	}
	return err
}

// GetState возвращает текущее состояние Circuit Breaker.
func (b *CircuitBreaker) GetState() gobreaker.State {
	return b.cb.State()
}
