package domain

import (
	"context"
	"strings"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email string) *User {
	return &User{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// List returns users whose id is in ids (all users when ids is empty), newest first.
	List(ctx context.Context, ids []int64, page PaginationParams) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines administrative user operations.
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*User, error)
	ListUsers(ctx context.Context, ids []int64, page PaginationParams) ([]*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
