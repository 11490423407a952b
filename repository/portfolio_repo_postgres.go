package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio-backend/models"

	"github.com/google/uuid"
)

const portfolioColumns = `id, user_id, title, description, type, slug, img_data, img_content_type,
	date, links, github_link, website_link`

// portfolioFieldColumns maps patch field names onto table columns.
var portfolioFieldColumns = map[string]string{
	"title":       "title",
	"desc":        "description",
	"type":        "type",
	"slug":        "slug",
	"links":       "links",
	"githubLink":  "github_link",
	"websiteLink": "website_link",
}

type PostgresPortfolioRepo struct {
	DB *sql.DB
}

func NewPostgresPortfolioRepo(db *sql.DB) *PostgresPortfolioRepo {
	return &PostgresPortfolioRepo{DB: db}
}

func (r *PostgresPortfolioRepo) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Links == nil {
		p.Links = []string{}
	}

	linksJSON, err := encodeLinks(p.Links)
	if err != nil {
		return err
	}
	imgData, imgType := imageColumns(p.Image)

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO portfolios (`+portfolioColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, p.ID, p.User, p.Title, p.Description, p.Type, nullIfEmpty(p.Slug), imgData, imgType,
		p.Date, linksJSON, p.GithubLink, p.WebsiteLink)
	if isUniqueViolation(err, "portfolios_slug_key") {
		return ErrDuplicateSlug
	}
	return err
}

func (r *PostgresPortfolioRepo) ListPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+portfolioColumns+` FROM portfolios ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPortfolioRepo) GetPortfolioBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	return r.getOne(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE slug=$1`, slug)
}

func (r *PostgresPortfolioRepo) GetPortfolioByID(ctx context.Context, id string) (*models.Portfolio, error) {
	return r.getOne(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE id=$1`, id)
}

func (r *PostgresPortfolioRepo) UpdatePortfolio(ctx context.Context, id string, patch models.PortfolioPatch) (*models.Portfolio, error) {
	var b setBuilder
	for _, f := range patch.Fields() {
		v := f.Value
		if links, ok := v.([]string); ok {
			encoded, err := encodeLinks(links)
			if err != nil {
				return nil, err
			}
			v = encoded
		}
		b.add(portfolioFieldColumns[f.Name], v)
	}
	if b.empty() {
		return r.GetPortfolioByID(ctx, id)
	}

	query, args := b.query("portfolios", id, portfolioColumns)
	p, err := r.getOne(ctx, query, args...)
	if isUniqueViolation(err, "portfolios_slug_key") {
		return nil, ErrDuplicateSlug
	}
	return p, err
}

func (r *PostgresPortfolioRepo) DeletePortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	return r.getOne(ctx, `DELETE FROM portfolios WHERE id=$1 RETURNING `+portfolioColumns, id)
}

func (r *PostgresPortfolioRepo) getOne(ctx context.Context, query string, args ...any) (*models.Portfolio, error) {
	p, err := scanPortfolio(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanPortfolio(row rowScanner) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	var (
		slug      sql.NullString
		imgData   []byte
		imgType   sql.NullString
		linksJSON []byte
	)
	err := row.Scan(&p.ID, &p.User, &p.Title, &p.Description, &p.Type, &slug, &imgData, &imgType,
		&p.Date, &linksJSON, &p.GithubLink, &p.WebsiteLink)
	if err != nil {
		return nil, err
	}

	p.Slug = slug.String
	p.Image = scanImage(imgData, imgType)
	if p.Links, err = decodeLinks(linksJSON); err != nil {
		return nil, err
	}
	return p, nil
}
