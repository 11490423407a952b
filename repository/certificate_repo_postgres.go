package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio-backend/models"

	"github.com/google/uuid"
)

const certificateColumns = "id, user_id, comp_name, year, field, img_data, img_content_type, created_at, winner"

var certificateFieldColumns = map[string]string{
	"compName": "comp_name",
	"year":     "year",
	"field":    "field",
	"winner":   "winner",
}

type PostgresCertificateRepo struct {
	DB *sql.DB
}

func NewPostgresCertificateRepo(db *sql.DB) *PostgresCertificateRepo {
	return &PostgresCertificateRepo{DB: db}
}

func (r *PostgresCertificateRepo) CreateCertificate(ctx context.Context, c *models.Certificate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	imgData, imgType := imageColumns(c.Image)

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO certificates (`+certificateColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, c.ID, c.User, c.CompName, c.Year, c.Field, imgData, imgType, c.CreatedAt, c.Winner)
	return err
}

func (r *PostgresCertificateRepo) ListCertificates(ctx context.Context) ([]*models.Certificate, error) {
	return r.list(ctx, `SELECT `+certificateColumns+` FROM certificates ORDER BY created_at`)
}

func (r *PostgresCertificateRepo) ListCertificatesPage(ctx context.Context, skip, limit int64) ([]*models.Certificate, error) {
	return r.list(ctx, `SELECT `+certificateColumns+` FROM certificates
		ORDER BY year DESC, id ASC OFFSET $1 LIMIT $2`, skip, limit)
}

func (r *PostgresCertificateRepo) CountCertificates(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&n)
	return n, err
}

func (r *PostgresCertificateRepo) DistinctFields(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT field FROM certificates ORDER BY field`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []string{}
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r *PostgresCertificateRepo) ListCertificatesByField(ctx context.Context, field string) ([]*models.Certificate, error) {
	return r.list(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE field=$1 ORDER BY created_at`, field)
}

func (r *PostgresCertificateRepo) GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error) {
	return r.getOne(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id=$1`, id)
}

func (r *PostgresCertificateRepo) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	var b setBuilder
	for _, f := range patch.Fields() {
		b.add(certificateFieldColumns[f.Name], f.Value)
	}
	if b.empty() {
		return r.GetCertificateByID(ctx, id)
	}

	query, args := b.query("certificates", id, certificateColumns)
	return r.getOne(ctx, query, args...)
}

func (r *PostgresCertificateRepo) DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	return r.getOne(ctx, `DELETE FROM certificates WHERE id=$1 RETURNING `+certificateColumns, id)
}

func (r *PostgresCertificateRepo) list(ctx context.Context, query string, args ...any) ([]*models.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCertificateRepo) getOne(ctx context.Context, query string, args ...any) (*models.Certificate, error) {
	c, err := scanCertificate(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCertificate(row rowScanner) (*models.Certificate, error) {
	c := &models.Certificate{}
	var (
		imgData []byte
		imgType sql.NullString
	)
	err := row.Scan(&c.ID, &c.User, &c.CompName, &c.Year, &c.Field, &imgData, &imgType, &c.CreatedAt, &c.Winner)
	if err != nil {
		return nil, err
	}
	c.Image = scanImage(imgData, imgType)
	return c, nil
}
