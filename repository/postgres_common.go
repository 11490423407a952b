package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/models"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a postgres unique_violation on the
// named constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// setBuilder collects "col=$n" fragments for a sparse UPDATE.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s=$%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.cols) == 0
}

// query renders "UPDATE table SET ... WHERE id=$n RETURNING returning".
func (b *setBuilder) query(table, id, returning string) (string, []any) {
	args := append(b.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id=$%d RETURNING %s",
		table, strings.Join(b.cols, ", "), len(args), returning)
	return q, args
}

func imageColumns(img *models.Image) (data []byte, contentType sql.NullString) {
	if img == nil {
		return nil, sql.NullString{}
	}
	return img.Data, sql.NullString{String: img.ContentType, Valid: true}
}

func scanImage(data []byte, contentType sql.NullString) *models.Image {
	if !contentType.Valid && len(data) == 0 {
		return nil
	}
	return &models.Image{Data: data, ContentType: contentType.String}
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// encodeLinks returns the JSONB text for links. lib/pq sends []byte as
// bytea, so the value is passed as a string.
func encodeLinks(links []string) (string, error) {
	if links == nil {
		links = []string{}
	}
	raw, err := json.Marshal(links)
	return string(raw), err
}

func decodeLinks(raw []byte) ([]string, error) {
	links := []string{}
	if len(raw) == 0 {
		return links, nil
	}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, err
	}
	return links, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
