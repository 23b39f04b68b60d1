package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado de stock entre bodegas. Al aprobarse genera el par
// TRASLADO_SALIDA / TRASLADO_ENTRADA en una sola transacción, ambos al costo
// promedio de la bodega origen al momento del traslado.
type Transfer struct {
	ID              string
	Folio           string
	FromWarehouseID string
	ToWarehouseID   string
	Status          string // PENDIENTE | COMPLETADA | ANULADA
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []TransferItem
}

// TransferItem línea de traslado.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
}
