package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// SaleLineInput línea de venta pedida por el caller. Quantity siempre positiva.
type SaleLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateSaleInput entrada para crear una venta.
type CreateSaleInput struct {
	Folio       string
	WarehouseID string
	CustomerID  string
	Items       []SaleLineInput
}

// CreateSale crea una venta COMPLETADA: valida sesión de caja abierta del operador,
// bloquea los saldos de todas las líneas en orden determinístico, verifica stock de
// los productos con control, registra una salida VENTA por línea al costo promedio
// vigente y persiste cabecera + líneas, todo en una transacción.
func (o *Orchestrator) CreateSale(ctx context.Context, userID string, in CreateSaleInput) (*entity.Sale, error) {
	if userID == "" || in.WarehouseID == "" || in.Folio == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	open, err := o.sessions.HasOpenSession(userID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.ErrNoOpenCashSession
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		Folio:       in.Folio,
		WarehouseID: in.WarehouseID,
		CustomerID:  in.CustomerID,
		Status:      entity.DocCompletada,
		SoldAt:      now,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		wh, err := r.Warehouses.GetByID(in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}

		keys := make([]balanceKey, 0, len(in.Items))
		needs := make(map[string]decimal.Decimal, len(in.Items))
		for _, item := range in.Items {
			keys = append(keys, balanceKey{WarehouseID: in.WarehouseID, ProductID: item.ProductID})
			needs[item.ProductID] = needs[item.ProductID].Add(item.Quantity)
		}
		locked, err := lockBalances(r, keys)
		if err != nil {
			return err
		}
		// Valida el stock agregado por producto antes de escribir el primer movimiento.
		if err := requireStock(r, locked, in.WarehouseID, needs); err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range in.Items {
			mov, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   in.WarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindVenta,
				Quantity:      item.Quantity,
				ReferenceType: entity.RefVenta,
				ReferenceID:   sale.ID,
				Note:          fmt.Sprintf("VENTA %s", in.Folio),
				UserID:        userID,
			}, now)
			if err != nil {
				return err
			}
			subtotal := item.Quantity.Mul(item.UnitPrice)
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:           uuid.New().String(),
				SaleID:       sale.ID,
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				HistUnitCost: mov.UnitCost, // costo promedio consumido, congelado en la línea
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)
		}
		sale.Total = total

		return r.Sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("ventas", "crear", "venta", sale.ID, nil, sale)
	return sale, nil
}
