package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio-backend/models"

	"github.com/google/uuid"
)

type PostgresContactRepo struct {
	DB *sql.DB
}

func NewPostgresContactRepo(db *sql.DB) *PostgresContactRepo {
	return &PostgresContactRepo{DB: db}
}

func (r *PostgresContactRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.TimeStamp.IsZero() {
		c.TimeStamp = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, msg, time_stamp)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.Email, c.Msg, c.TimeStamp)
	return err
}

func (r *PostgresContactRepo) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, msg, time_stamp FROM contacts ORDER BY time_stamp DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Contact{}
	for rows.Next() {
		c := &models.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Msg, &c.TimeStamp); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresContactRepo) DeleteContact(ctx context.Context, id string) (*models.Contact, error) {
	c := &models.Contact{}
	err := r.DB.QueryRowContext(ctx, `
		DELETE FROM contacts WHERE id=$1 RETURNING id, name, email, msg, time_stamp
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Msg, &c.TimeStamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
