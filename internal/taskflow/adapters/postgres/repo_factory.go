// Package postgres содержит реализации репозиториев на PostgreSQL.
package postgres

import (
	"taskflow/internal/taskflow/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
	taskRepo repositories.TaskRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
		taskRepo: NewTaskRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// TaskRepository возвращает репозиторий задач.
func (f *RepositoryFactory) TaskRepository() repositories.TaskRepository {
	return f.taskRepo
}
