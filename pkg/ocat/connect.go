package ocat

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

var _ Queryer = (*pgxpool.Pool)(nil)

// Connect opens a pooled connection to the catalog database. The pool
// satisfies Queryer.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 4
	return pgxpool.ConnectConfig(ctx, config)
}
