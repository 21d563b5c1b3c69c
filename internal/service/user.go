package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/repository"
)

var allowedRoles = map[string]struct{}{
	"admin":  {},
	"editor": {},
	"viewer": {},
}

// UserService exposes the admin-facing account management operations.
type UserService struct {
	users repository.UsersRepository
}

// NewUserService wires the user service.
func NewUserService(users repository.UsersRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns every account, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

// CreateUser provisions an account with an explicit role.
func (s *UserService) CreateUser(ctx context.Context, email, password, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ValidationError{Message: fmt.Sprintf("invalid email address %q", email)}
	}
	if len(password) < 8 {
		return nil, ValidationError{Message: "password must be at least 8 characters"}
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if _, ok := allowedRoles[role]; !ok {
		return nil, ValidationError{Message: fmt.Sprintf("invalid role %q", role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, email, string(hash), role)
}

// DeleteUser removes an account by id.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
