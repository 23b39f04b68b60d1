package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de la proyección de saldos sobre PostgreSQL
// (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo de una clave (bodega, producto) sin bloquear la fila.
// Clave inexistente devuelve saldo en cero, no error.
func (r *BalanceRepo) Get(warehouseID, productID string) (*entity.Balance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, average_cost, last_movement_id, updated_at
		FROM balances WHERE warehouse_id = $1 AND product_id = $2`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&b.WarehouseID, &b.ProductID, &b.Quantity, &b.AverageCost, &b.LastMovementID, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewBalance(warehouseID, productID), nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Serializa
// todas las operaciones que tocan la misma clave de stock. Si la clave todavía no
// tiene fila, primero se materializa una en cero (ON CONFLICT DO NOTHING): un
// SELECT FOR UPDATE sobre cero filas no bloquea nada, y dos primeros movimientos
// concurrentes de la misma clave partirían ambos de cero y se pisarían el Upsert.
func (r *BalanceRepo) GetForUpdate(warehouseID, productID string) (*entity.Balance, error) {
	seed := `
		INSERT INTO balances (warehouse_id, product_id, quantity, average_cost, last_movement_id, updated_at)
		VALUES ($1, $2, 0, 0, 0, now())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, warehouseID, productID); err != nil {
		return nil, fmt.Errorf("seed balance row: %w", err)
	}

	query := `
		SELECT warehouse_id, product_id, quantity, average_cost, last_movement_id, updated_at
		FROM balances WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&b.WarehouseID, &b.ProductID, &b.Quantity, &b.AverageCost, &b.LastMovementID, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo por (bodega, producto).
func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	query := `
		INSERT INTO balances (warehouse_id, product_id, quantity, average_cost, last_movement_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			average_cost = EXCLUDED.average_cost,
			last_movement_id = EXCLUDED.last_movement_id,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.WarehouseID, balance.ProductID, balance.Quantity, balance.AverageCost, balance.LastMovementID,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}
