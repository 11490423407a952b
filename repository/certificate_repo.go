package repository

import (
	"context"

	"portfolio-backend/models"
)

type CertificateRepository interface {
	CreateCertificate(ctx context.Context, c *models.Certificate) error
	ListCertificates(ctx context.Context) ([]*models.Certificate, error)
	// ListCertificatesPage returns certificates ordered by year, newest first.
	ListCertificatesPage(ctx context.Context, skip, limit int64) ([]*models.Certificate, error)
	CountCertificates(ctx context.Context) (int64, error)
	DistinctFields(ctx context.Context) ([]string, error)
	ListCertificatesByField(ctx context.Context, field string) ([]*models.Certificate, error)
	GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error)
	UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error)
	DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error)
}
