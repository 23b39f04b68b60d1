package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de persistencia para traslados (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el traslado con sus líneas. Folio duplicado devuelve domain.ErrConflict.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, folio, from_warehouse_id, to_warehouse_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Folio, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Status, transfer.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("folio %s: %w", transfer.Folio, domain.ErrConflict)
		}
		return fmt.Errorf("create transfer: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i := range transfer.Items {
		item := &transfer.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.TransferID = transfer.ID
		if _, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.TransferID, item.ProductID, item.Quantity,
		); err != nil {
			return fmt.Errorf("create transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus líneas. Devuelve nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, folio, from_warehouse_id, to_warehouse_id, status, created_by, created_at, updated_at
		FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Folio, &t.FromWarehouseID, &t.ToWarehouseID, &t.Status,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	itemQuery := `
		SELECT id, transfer_id, product_id, quantity
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemQuery, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer items: %w", err)
	}
	return &t, nil
}

// UpdateStatus cambia el estado del traslado.
func (r *TransferRepo) UpdateStatus(id, status string) error {
	query := `UPDATE transfers SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
