package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only: este repo no expone UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, warehouse_id, product_id, kind, quantity, unit_cost, total_cost,
		reference_type, reference_id, note, occurred_at, created_by`

// Create inserta el movimiento y asigna movement.ID desde la secuencia BIGSERIAL.
// El ID asignado por la DB es el orden cronológico autoritativo del kardex.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (warehouse_id, product_id, kind, quantity, unit_cost, total_cost,
			reference_type, reference_id, note, occurred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		movement.WarehouseID, movement.ProductID, string(movement.Kind),
		movement.Quantity, movement.UnitCost, movement.TotalCost,
		string(movement.ReferenceType), movement.ReferenceID, movement.Note,
		movement.OccurredAt, createdBy,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByKey devuelve los movimientos de (bodega, producto) con id > sinceID,
// en orden ascendente de id. Es la consulta base del replay de saldos.
func (r *MovementRepo) ListByKey(warehouseID, productID string, sinceID int64) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE warehouse_id = $1 AND product_id = $2 AND id > $3
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, warehouseID, productID, sinceID)
	if err != nil {
		return nil, fmt.Errorf("list movements by key: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByReference devuelve los movimientos ligados a un documento de negocio,
// en orden ascendente de id.
func (r *MovementRepo) ListByReference(refType entity.ReferenceType, refID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, string(refType), refID)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByProduct devuelve los movimientos de un producto en todas las bodegas,
// con filtro opcional de fechas, paginado, más reciente primero.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		  AND ($3::timestamptz IS NULL OR occurred_at <= $3)
		ORDER BY id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByWarehouse devuelve los movimientos de una bodega, con filtro opcional
// de fechas, paginado, más reciente primero.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE warehouse_id = $1
		  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		  AND ($3::timestamptz IS NULL OR occurred_at <= $3)
		ORDER BY id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by warehouse: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var kind, refType string
	var createdBy *string
	err := row.Scan(
		&m.ID, &m.WarehouseID, &m.ProductID, &kind, &m.Quantity, &m.UnitCost, &m.TotalCost,
		&refType, &m.ReferenceID, &m.Note, &m.OccurredAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	m.ReferenceType = entity.ReferenceType(refType)
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var movements []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}
