package repository

import (
	"context"

	"portfolio-backend/models"
)

type ContactRepository interface {
	CreateContact(ctx context.Context, c *models.Contact) error
	ListContacts(ctx context.Context) ([]*models.Contact, error)
	DeleteContact(ctx context.Context, id string) (*models.Contact, error)
}
