package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
)

// MemoryUsersRepository keeps users in memory. It backs the tracker when no
// database is configured, so the seeded deployment still has a working login.
type MemoryUsersRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
}

// NewMemoryUsersRepository builds an empty in-memory users repository.
func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{users: make(map[uuid.UUID]entity.User)}
}

// FindByEmail fetches a user by email if present.
func (r *MemoryUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID retrieves a user by identifier.
func (r *MemoryUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, ErrUserNotFound
}

// Create stores a new user, enforcing email uniqueness.
func (r *MemoryUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return nil, ErrEmailDuplicate
		}
	}

	now := time.Now()
	user := entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user
	return &user, nil
}

// List returns all users ordered by creation date (desc).
func (r *MemoryUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// Delete removes a user by id.
func (r *MemoryUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

var _ UsersRepository = (*MemoryUsersRepository)(nil)
