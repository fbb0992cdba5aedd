// Package repomanager selects and owns the user store backend: PostgreSQL
// with goose migrations, or process memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the backend schema up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close() error
}

// MemoryRepositoryManager serves a single in-memory user store. Data lives
// as long as the process.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Close() error { return nil }
