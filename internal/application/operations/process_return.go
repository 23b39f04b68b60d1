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

// ReturnLineInput línea a devolver. Quantity siempre positiva.
type ReturnLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ProcessReturnInput entrada para procesar una devolución sobre una venta.
type ProcessReturnInput struct {
	SaleID string
	Reason string
	Items  []ReturnLineInput
}

// ProcessReturn procesa una devolución: exige sesión de caja abierta, venta
// COMPLETADA y dentro de la ventana de política; el cupo devolvible por línea se
// recalcula dentro de la misma transacción y bajo el mismo lock de saldo que los
// movimientos, de modo que dos devoluciones concurrentes no puedan superar juntas
// lo vendido. Cada línea entra como DEVOLUCION_VENTA al costo histórico de la venta.
func (o *Orchestrator) ProcessReturn(ctx context.Context, userID string, in ProcessReturnInput) (*entity.SaleReturn, error) {
	if userID == "" || in.SaleID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
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
	ret := &entity.SaleReturn{
		ID:        uuid.New().String(),
		SaleID:    in.SaleID,
		Status:    entity.DocCompletada,
		Reason:    in.Reason,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		sale, err := r.Sales.GetByID(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.DocCompletada {
			return &domain.ReturnNotEligibleError{SaleID: sale.ID, Reason: "estado"}
		}
		// La ventana cuenta desde la venta, no por línea.
		if now.Sub(sale.SoldAt) > o.returnWindow {
			return &domain.ReturnNotEligibleError{SaleID: sale.ID, Reason: "ventana"}
		}

		keys := make([]balanceKey, 0, len(in.Items))
		for _, item := range in.Items {
			keys = append(keys, balanceKey{WarehouseID: sale.WarehouseID, ProductID: item.ProductID})
		}
		if _, err := lockBalances(r, keys); err != nil {
			return err
		}

		// Cupo por línea bajo el lock: cantidad vendida menos devoluciones activas.
		requested := make(map[string]decimal.Decimal, len(in.Items))
		for _, item := range in.Items {
			requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
		}
		for pid, qty := range requested {
			available, err := kardex.AvailableToReturn(r, sale, pid)
			if err != nil {
				return err
			}
			if qty.GreaterThan(available) {
				return &domain.ReturnNotEligibleError{
					SaleID:    sale.ID,
					ProductID: pid,
					Reason:    "cupo",
					Requested: qty,
					Available: available,
				}
			}
		}

		for _, item := range in.Items {
			histCost, err := histUnitCostFor(sale, item.ProductID)
			if err != nil {
				return err
			}
			ret.Items = append(ret.Items, entity.SaleReturnItem{
				ID:        uuid.New().String(),
				ReturnID:  ret.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitCost:  histCost,
			})
		}
		if err := r.Returns.Create(ret); err != nil {
			return err
		}

		for _, item := range ret.Items {
			histCost := item.UnitCost
			if _, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   sale.WarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindDevolucionVenta,
				Quantity:      item.Quantity,
				UnitCostHint:  &histCost, // costo histórico de la venta, no el promedio vigente
				ReferenceType: entity.RefDevolucion,
				ReferenceID:   ret.ID,
				Note:          fmt.Sprintf("DEVOLUCION VENTA %s", sale.Folio),
				UserID:        userID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("devoluciones", "crear", "devolucion", ret.ID, nil, ret)
	return ret, nil
}

// histUnitCostFor costo histórico congelado de un producto en la venta.
func histUnitCostFor(sale *entity.Sale, productID string) (decimal.Decimal, error) {
	for _, item := range sale.Items {
		if item.ProductID == productID {
			return item.HistUnitCost, nil
		}
	}
	return decimal.Zero, domain.ErrInvalidInput
}
