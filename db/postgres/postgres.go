package postgres

import (
	"context"
	"database/sql"
	"time"

	"portfolio-backend/logger"

	_ "github.com/lib/pq"
)

type PostgresDB struct {
	Conn     *sql.DB
	Ctx      context.Context
	Cancel   context.CancelFunc
	URL      string
	MaxConns int
}

// NewPostgresDB prepares a pool of at most maxConns connections.
func NewPostgresDB(url string, maxConns int) *PostgresDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if maxConns <= 0 {
		maxConns = 5
	}
	return &PostgresDB{
		Ctx:      ctx,
		Cancel:   cancel,
		URL:      url,
		MaxConns: maxConns,
	}
}

func (p *PostgresDB) Connect() error {
	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return err
	}

	conn.SetMaxOpenConns(p.MaxConns)
	conn.SetMaxIdleConns(max(1, p.MaxConns/2))
	conn.SetConnMaxLifetime(30 * time.Minute)

	p.Conn = conn
	if err := p.Conn.PingContext(p.Ctx); err != nil {
		return err
	}
	logger.Infof("connected to postgres (max %d connections)", p.MaxConns)
	return nil
}

func (p *PostgresDB) Disconnect() error {
	p.Cancel()
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}

func (p *PostgresDB) GetContext() context.Context {
	return p.Ctx
}
