package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
)

var _ kardex.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMS int
}

// NewTxRunner construye el runner con el pool. lockTimeoutMS acota la espera por
// filas bloqueadas de saldos; 0 desactiva el límite.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMS int) *TxRunner {
	return &TxRunner{pool: pool, lockTimeoutMS: lockTimeoutMS}
}

// NewTxRepos construye el set de repositorios sobre un Querier (pool o tx).
func NewTxRepos(q Querier) kardex.TxRepos {
	return kardex.TxRepos{
		Movements:    NewMovementRepository(q),
		Balances:     NewBalanceRepository(q),
		Products:     NewProductRepository(q),
		Warehouses:   NewWarehouseRepository(q),
		Sales:        NewSaleRepository(q),
		Purchases:    NewPurchaseRepository(q),
		Returns:      NewReturnRepository(q),
		Transfers:    NewTransferRepository(q),
		CashSessions: NewCashSessionRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un timeout de lock (55P03) se traduce a domain.ErrConflict para que la capa HTTP
// responda 409 en vez de 500.
func (r *TxRunner) Run(ctx context.Context, fn func(repos kardex.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMS > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(NewTxRepos(tx)); err != nil {
		if isLockNotAvailable(err) {
			return fmt.Errorf("saldo bloqueado por otra operación: %w", domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "commit transaction", Err: err}
	}
	return nil
}
