package repository

import (
	"context"

	"portfolio-backend/models"
)

type PortfolioRepository interface {
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	ListPortfolios(ctx context.Context) ([]*models.Portfolio, error)
	GetPortfolioBySlug(ctx context.Context, slug string) (*models.Portfolio, error)
	GetPortfolioByID(ctx context.Context, id string) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, patch models.PortfolioPatch) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) (*models.Portfolio, error)
}
