package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

type postgresKeyValue struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) KeyValueRepository {
	return &postgresKeyValue{
		pool: pool,
	}
}

func (that *postgresKeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_data WHERE key = $1`

	var value []byte

	err := that.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return value, nil
}

func (that *postgresKeyValue) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_data (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := that.pool.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to put key %s: %w", key, err)
	}

	return nil
}

func (that *postgresKeyValue) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_data WHERE key = $1`

	tag, err := that.pool.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	return nil
}
