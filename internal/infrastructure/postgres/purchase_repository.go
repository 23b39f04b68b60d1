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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de persistencia para compras (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la compra con sus líneas. Folio duplicado devuelve domain.ErrConflict.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (id, folio, warehouse_id, supplier_id, status, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	supplierID := (*string)(nil)
	if purchase.SupplierID != "" {
		supplierID = &purchase.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.Folio, purchase.WarehouseID, supplierID,
		purchase.Status, purchase.Total, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("folio %s: %w", purchase.Folio, domain.ErrConflict)
		}
		return fmt.Errorf("create purchase: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range purchase.Items {
		item := &purchase.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.PurchaseID = purchase.ID
		if _, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitCost, item.Subtotal,
		); err != nil {
			return fmt.Errorf("create purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus líneas. Devuelve nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, folio, warehouse_id, supplier_id, status, total, created_by, created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	var supplierID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Folio, &p.WarehouseID, &supplierID, &p.Status,
		&p.Total, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}

	items, err := r.listItems(p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// UpdateStatus cambia el estado de la compra.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve compras paginadas, más reciente primero (sin líneas).
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, folio, warehouse_id, supplier_id, status, total, created_by, created_at, updated_at
		FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var supplierID *string
		if err := rows.Scan(
			&p.ID, &p.Folio, &p.WarehouseID, &supplierID, &p.Status,
			&p.Total, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if supplierID != nil {
			p.SupplierID = *supplierID
		}
		purchases = append(purchases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}

func (r *PurchaseRepo) listItems(purchaseID string) ([]entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase items: %w", err)
	}
	return items, nil
}
