package repository

import (
	"context"

	"portfolio-backend/models"
)

// UserRepository defines the interface for user operations.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
}
