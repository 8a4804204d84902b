package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories is a container for all data access objects
type Repositories struct {
	FacultyRepository *FacultyRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		FacultyRepository: NewFacultyRepository(db),
	}
}
