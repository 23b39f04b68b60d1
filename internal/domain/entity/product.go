package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// StockControlled distingue bienes físicos (saldo nunca negativo) de servicios
// (pueden venderse sin existencia). ListCost es el costo de lista de referencia,
// usado como hint cuando una operación no trae un costo mejor.
type Product struct {
	ID              string
	SKU             string // código único
	Name            string
	Description     string
	Price           decimal.Decimal // precio de venta
	ListCost        decimal.Decimal // costo de lista (fallback); el costo real vive en Balance.AverageCost
	StockControlled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
