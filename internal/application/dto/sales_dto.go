package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta pedida por el cliente HTTP.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest crea una venta.
type CreateSaleRequest struct {
	Folio       string            `json:"folio"`
	WarehouseID string            `json:"warehouse_id"`
	CustomerID  string            `json:"customer_id"`
	Items       []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	HistUnitCost decimal.Decimal `json:"hist_unit_cost"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con líneas.
type SaleResponse struct {
	ID          string             `json:"id"`
	Folio       string             `json:"folio"`
	WarehouseID string             `json:"warehouse_id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Status      string             `json:"status"`
	Total       decimal.Decimal    `json:"total"`
	SoldAt      time.Time          `json:"sold_at"`
	Items       []SaleItemResponse `json:"items"`
}

// ReturnItemRequest línea a devolver.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ProcessReturnRequest procesa una devolución sobre una venta.
type ProcessReturnRequest struct {
	SaleID string              `json:"sale_id"`
	Reason string              `json:"reason"`
	Items  []ReturnItemRequest `json:"items"`
}

// ReturnItemResponse línea devuelta con su costo histórico.
type ReturnItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReturnResponse devolución con líneas.
type ReturnResponse struct {
	ID     string               `json:"id"`
	SaleID string               `json:"sale_id"`
	Status string               `json:"status"`
	Reason string               `json:"reason,omitempty"`
	Items  []ReturnItemResponse `json:"items"`
}
