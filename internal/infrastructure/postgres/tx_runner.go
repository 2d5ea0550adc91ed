package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finzeta/identity-api/internal/application/auth"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/domain/repository"
)

// Asegura que TxRunner implementa auth.TxRunner y usecase.SubscriptionTxRunner.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ usecase.SubscriptionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Es la transacción del registro: precondiciones, insert de empresa
// e insert de usuario comparten el mismo contexto transaccional.
func (r *TxRunner) Run(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(companyRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSubscription inicia una transacción con repos de empresa e histórico
// (start/extend de suscripciones: read-modify-append atómico).
func (r *TxRunner) RunSubscription(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	subsRepo repository.SubscriptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	subsRepo := NewSubscriptionRepository(tx)

	if err := fn(companyRepo, subsRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
