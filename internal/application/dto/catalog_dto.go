package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ListCost        decimal.Decimal `json:"list_cost"`
	StockControlled *bool           `json:"stock_controlled"` // nil = true (bien físico)
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	ListCost        decimal.Decimal `json:"list_cost"`
	StockControlled bool            `json:"stock_controlled"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// OpenCashSessionRequest abre sesión de caja del usuario autenticado.
type OpenCashSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CloseCashSessionRequest cierra la sesión abierta del usuario autenticado.
type CloseCashSessionRequest struct {
	DeclaredAmount decimal.Decimal `json:"declared_amount"`
}

// CashSessionResponse sesión de caja.
type CashSessionResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Status        string          `json:"status"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
}
