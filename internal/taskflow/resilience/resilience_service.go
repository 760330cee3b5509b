package resilience

import (
	"context"

	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторные попытки для вызовов зависимости.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости с настройками по умолчанию.
func NewServiceResilience(serviceName string, observer StateObserver) *ServiceResilience {
	return NewServiceResilienceWithConfig(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig(), observer)
}

// NewServiceResilienceWithConfig создает обертку отказоустойчивости с заданными настройками.
func NewServiceResilienceWithConfig(
	serviceName string,
	breaker CircuitBreakerConfig,
	retry RetryConfig,
	observer StateObserver,
) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, breaker, observer),
		retry:          NewRetry(serviceName, retry),
	}
}

// ExecuteWithResilience выполняет операцию. Серия повторов считается одним вызовом для Circuit Breaker.
func (r *ServiceResilience) ExecuteWithResilience(
	ctx context.Context,
	operationName string,
	operation func() error,
) error {
	log := logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	)
	log.Debug(ctx, "executing operation with resilience")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// CircuitBreaker возвращает предохранитель сервиса.
func (r *ServiceResilience) CircuitBreaker() *CircuitBreaker {
	return r.circuitBreaker
}
