package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de una compra a proveedor.
// Ciclo: PENDIENTE (creada) → COMPLETADA (recibida, con movimientos COMPRA) → ANULADA.
// Anular una compra recibida no borra los movimientos originales: agrega movimientos
// ANULACION_COMPRA compensatorios al costo original.
type Purchase struct {
	ID          string
	Folio       string
	WarehouseID string
	SupplierID  string
	Status      string // PENDIENTE | COMPLETADA | ANULADA
	Total       decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []PurchaseItem
}

// PurchaseItem línea de compra con su costo unitario de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
