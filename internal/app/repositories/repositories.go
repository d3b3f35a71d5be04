package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	AccountRepository *AccountRepository
	StudentRepository *StudentRepository
}

// NewRepositories creates all repositories over a shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository: NewAccountRepository(db),
		StudentRepository: NewStudentRepository(db),
	}
}
