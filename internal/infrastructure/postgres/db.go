package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB es el subconjunto de la API de pgx que usan los repositorios. Lo
// satisfacen tanto *pgxpool.Pool como pgx.Tx, de modo que el TxRunner puede
// reconstruir los mismos repositorios atados a una transacción.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
