package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterAdjustmentRequest registra un AJUSTE manual o STOCK_INICIAL vía LedgerService.
// Quantity siempre positiva; Direction "ENTRADA" | "SALIDA" (solo aplica a AJUSTE).
// UnitCost opcional en entradas: sin él se usa el costo de lista del producto.
type RegisterAdjustmentRequest struct {
	WarehouseID string           `json:"warehouse_id"`
	ProductID   string           `json:"product_id"`
	Kind        string           `json:"kind"` // AJUSTE | STOCK_INICIAL
	Direction   string           `json:"direction"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Note        string           `json:"note"`
}

// MovementResponse un movimiento del kardex.
type MovementResponse struct {
	ID            int64           `json:"id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// BalanceResponse saldo actual de una clave (bodega, producto).
type BalanceResponse struct {
	WarehouseID    string          `json:"warehouse_id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	LastMovementID int64           `json:"last_movement_id"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ListMovementsRequest filtros del kardex (producto o bodega, rango de fechas).
type ListMovementsRequest struct {
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
	From        string `query:"from"` // YYYY-MM-DD
	To          string `query:"to"`
	PageRequest
}
