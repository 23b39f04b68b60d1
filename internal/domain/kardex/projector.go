package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// AverageCost lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si StockActual <= 0 el promedio anterior no aporta: el nuevo costo es el de la entrada.
func AverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// ApplyInbound aplica una entrada sobre un saldo y devuelve el saldo nuevo (no muta el
// recibido). Las entradas recalculan el costo promedio; qty debe ser positiva.
func ApplyInbound(b *entity.Balance, qty, unitCost decimal.Decimal) (*entity.Balance, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if unitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	next := *b
	next.AverageCost = AverageCost(b.Quantity, b.AverageCost, qty, unitCost)
	next.Quantity = b.Quantity.Add(qty)
	return &next, nil
}

// ApplyOutbound aplica una salida: consume al costo promedio vigente sin modificarlo
// y devuelve (saldo nuevo, costo consumido). Si el resultado queda negativo y el
// producto tiene control de stock, falla con InsufficientStockError sin tocar el saldo.
func ApplyOutbound(b *entity.Balance, qty decimal.Decimal, stockControlled bool) (*entity.Balance, decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInvalidQuantity
	}
	newQty := b.Quantity.Sub(qty)
	if newQty.IsNegative() && stockControlled {
		return nil, decimal.Zero, &domain.InsufficientStockError{
			WarehouseID: b.WarehouseID,
			ProductID:   b.ProductID,
			Requested:   qty,
			Available:   b.Quantity,
		}
	}
	next := *b
	next.Quantity = newQty
	return &next, b.AverageCost, nil
}

// Rebuild reconstruye un saldo desde cero por fold puro sobre los movimientos de una
// clave, en orden ascendente de ID. Produce exactamente el mismo resultado que la
// aplicación incremental (la tabla de saldos es un cache, esta es la verdad).
// En salidas ignora el costo almacenado y consume al promedio corriente del fold,
// igual que hizo la aplicación incremental en su momento.
func Rebuild(warehouseID, productID string, movements []*entity.Movement, stockControlled bool) (*entity.Balance, error) {
	b := entity.NewBalance(warehouseID, productID)
	for _, m := range movements {
		if m.Quantity.IsZero() {
			return nil, domain.ErrInvalidQuantity
		}
		var err error
		if m.Quantity.GreaterThan(decimal.Zero) {
			b, err = ApplyInbound(b, m.Quantity, m.UnitCost)
		} else {
			b, _, err = ApplyOutbound(b, m.Quantity.Neg(), stockControlled)
		}
		if err != nil {
			return nil, err
		}
		b.LastMovementID = m.ID
	}
	return b, nil
}
