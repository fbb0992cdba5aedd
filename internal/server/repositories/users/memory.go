package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Indexes by email and
// biometric key are checked and written under one lock, so uniqueness
// holds under concurrent callers. Returned users are copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	byKey   map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		byKey:   make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("email: %w", common.ErrorAlreadyExists)
	}
	if user.BiometricKey != "" {
		if _, ok := r.byKey[user.BiometricKey]; ok {
			return nil, fmt.Errorf("biometric key: %w", common.ErrorAlreadyExists)
		}
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, ok := r.byID[stored.ID]; ok {
		return nil, fmt.Errorf("id: %w", common.ErrorAlreadyExists)
	}
	now := r.now()
	stored.CreatedAt, stored.UpdatedAt = now, now

	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	if stored.BiometricKey != "" {
		r.byKey[stored.BiometricKey] = stored.ID
	}

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byEmail, email)
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, common.ErrorNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byKey, key)
}

func (r *MemoryRepository) UpdateBiometricKey(ctx context.Context, userID, key string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if holder, taken := r.byKey[key]; taken && key != "" && holder != userID {
		return nil, fmt.Errorf("biometric key: %w", common.ErrorAlreadyExists)
	}

	if u.BiometricKey != "" {
		delete(r.byKey, u.BiometricKey)
	}
	u.BiometricKey = key
	u.UpdatedAt = r.now()
	if key != "" {
		r.byKey[key] = userID
	}

	out := *u
	return &out, nil
}

func (r *MemoryRepository) lookup(index map[string]string, value string) (*models.User, error) {
	id, ok := index[value]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *r.byID[id]
	return &out, nil
}
