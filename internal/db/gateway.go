package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("db.gateway")

// Gateway executes statements against the store, one acquired connection per
// operation. The connection is released on every exit path; failures are
// logged here and then propagated unchanged to the caller.
type Gateway struct {
	pool *sqlx.DB
}

func NewGateway(pool *sqlx.DB) *Gateway {
	return &Gateway{pool: pool}
}

// Select runs a query and scans all rows into dest (a pointer to a slice).
func (g *Gateway) Select(ctx context.Context, dest any, op, query string, args ...any) error {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	conn, err := g.pool.Connx(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire connection", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	if err := conn.SelectContext(ctx, dest, query, args...); err != nil {
		slog.ErrorContext(ctx, "database error", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get runs a query expected to return at most one row. Zero rows is a normal
// outcome reported as found=false, never as an error.
func (g *Gateway) Get(ctx context.Context, dest any, op, query string, args ...any) (bool, error) {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	conn, err := g.pool.Connx(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire connection", "op", op, "error", err)
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	if err := conn.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.ErrorContext(ctx, "database error", "op", op, "error", err)
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Exec runs a statement that does not return rows.
func (g *Gateway) Exec(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	conn, err := g.pool.Connx(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire connection", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "database error", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
