package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest crea una compra en PENDIENTE (sin movimientos de kardex;
// el stock entra al recibirla).
type CreatePurchaseRequest struct {
	Folio       string                `json:"folio"`
	WarehouseID string                `json:"warehouse_id"`
	SupplierID  string                `json:"supplier_id"`
	Items       []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con líneas.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	Folio       string                 `json:"folio"`
	WarehouseID string                 `json:"warehouse_id"`
	SupplierID  string                 `json:"supplier_id,omitempty"`
	Status      string                 `json:"status"`
	Total       decimal.Decimal        `json:"total"`
	CreatedAt   time.Time              `json:"created_at"`
	Items       []PurchaseItemResponse `json:"items"`
}

// TransferItemRequest línea de traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest crea un traslado en PENDIENTE (se mueve stock al aprobarlo).
type CreateTransferRequest struct {
	Folio           string                `json:"folio"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Items           []TransferItemRequest `json:"items"`
}

// TransferResponse traslado con líneas.
type TransferResponse struct {
	ID              string                `json:"id"`
	Folio           string                `json:"folio"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Status          string                `json:"status"`
	Items           []TransferItemRequest `json:"items"`
}
