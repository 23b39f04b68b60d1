package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de documentos de negocio. Anular es un estado, nunca un borrado:
// el documento y sus movimientos de kardex se preservan para la historia.
const (
	DocPendiente  = "PENDIENTE"
	DocCompletada = "COMPLETADA"
	DocAnulada    = "ANULADA"
)

// Sale cabecera de una venta (folio tipo "F-001").
type Sale struct {
	ID          string
	Folio       string
	WarehouseID string
	CustomerID  string
	Status      string // PENDIENTE | COMPLETADA | ANULADA
	Total       decimal.Decimal
	SoldAt      time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []SaleItem
}

// SaleItem línea de venta. HistUnitCost es el costo promedio consumido al momento de
// la venta; queda congelado para que anulaciones y devoluciones reviertan al costo
// histórico exacto, no al promedio vigente.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	HistUnitCost decimal.Decimal
	Subtotal     decimal.Decimal
}
