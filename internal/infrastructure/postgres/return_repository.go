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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de persistencia para devoluciones (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la devolución con sus líneas.
func (r *ReturnRepo) Create(ret *entity.SaleReturn) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_returns (id, sale_id, status, reason, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.SaleID, ret.Status, ret.Reason, ret.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_return_items (id, return_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range ret.Items {
		item := &ret.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ReturnID = ret.ID
		if _, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.ReturnID, item.ProductID, item.Quantity, item.UnitCost,
		); err != nil {
			return fmt.Errorf("create return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una devolución con sus líneas. Devuelve nil si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.SaleReturn, error) {
	query := `
		SELECT id, sale_id, status, reason, created_by, created_at, updated_at
		FROM sale_returns WHERE id = $1`
	var ret entity.SaleReturn
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.Status, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}

	items, err := r.listItems(ret.ID)
	if err != nil {
		return nil, err
	}
	ret.Items = items
	return &ret, nil
}

// ListBySale devuelve todas las devoluciones de una venta, con líneas, en orden de
// creación. Incluye anuladas: el índice de referencias filtra por estado.
func (r *ReturnRepo) ListBySale(saleID string) ([]*entity.SaleReturn, error) {
	query := `
		SELECT id, sale_id, status, reason, created_by, created_at, updated_at
		FROM sale_returns WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list returns by sale: %w", err)
	}
	defer rows.Close()

	var returns []*entity.SaleReturn
	for rows.Next() {
		var ret entity.SaleReturn
		if err := rows.Scan(
			&ret.ID, &ret.SaleID, &ret.Status, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt, &ret.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		returns = append(returns, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate returns: %w", err)
	}

	for _, ret := range returns {
		items, err := r.listItems(ret.ID)
		if err != nil {
			return nil, err
		}
		ret.Items = items
	}
	return returns, nil
}

// UpdateStatus cambia el estado de la devolución.
func (r *ReturnRepo) UpdateStatus(id, status string) error {
	query := `UPDATE sale_returns SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReturnRepo) listItems(returnID string) ([]entity.SaleReturnItem, error) {
	query := `
		SELECT id, return_id, product_id, quantity, unit_cost
		FROM sale_return_items WHERE return_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleReturnItem
	for rows.Next() {
		var it entity.SaleReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return items: %w", err)
	}
	return items, nil
}
