package repository

import "errors"

var (
	ErrDuplicateEmail = errors.New("user already exists")
	ErrDuplicateSlug  = errors.New("portfolio with this slug already exists")
)
