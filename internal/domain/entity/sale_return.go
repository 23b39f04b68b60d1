package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleReturn devolución sobre una venta. Una devolución ANULADA libera el cupo
// devolvible de la venta origen: el índice de referencias solo suma devoluciones activas.
type SaleReturn struct {
	ID        string
	SaleID    string
	Status    string // COMPLETADA | ANULADA
	Reason    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []SaleReturnItem
}

// SaleReturnItem línea devuelta. UnitCost es el costo histórico de la línea de venta
// origen, no el promedio vigente al momento de la devolución.
type SaleReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}
