package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
)

// Querier abstrae pool o transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isAuthError verifica si un error es de autenticación (clase 28: invalid_authorization_specification).
func isAuthError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "28"
	}
	return false
}

// classify envuelve err como ErrTableAuth o ErrTableTransport.
func classify(op string, err error) error {
	if isAuthError(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrTableAuth, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrTableTransport, op, err)
}
