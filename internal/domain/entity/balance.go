package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es la proyección mutable del kardex: saldo y costo promedio actual por
// (bodega, producto). Es un cache sobre el log de movimientos — siempre reconstruible
// por replay completo en orden de ID — nunca una segunda fuente de verdad.
type Balance struct {
	WarehouseID    string
	ProductID      string
	Quantity       decimal.Decimal
	AverageCost    decimal.Decimal
	LastMovementID int64 // último movimiento aplicado, para auditoría/reconciliación
	UpdatedAt      time.Time
}

// NewBalance devuelve un saldo en cero para una clave.
func NewBalance(warehouseID, productID string) *Balance {
	return &Balance{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    decimal.Zero,
		AverageCost: decimal.Zero,
	}
}
