package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// VoidSale anula una venta: registra una entrada DEVOLUCION_VENTA por cada línea
// original, al costo histórico congelado en la línea (no al promedio vigente), y
// marca la venta ANULADA. El efecto neto sobre el saldo cancela exactamente el de
// la venta original. Anular una venta ya ANULADA se rechaza, no se acepta en silencio.
func (o *Orchestrator) VoidSale(ctx context.Context, userID, saleID string) (*entity.Sale, error) {
	if userID == "" || saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	now := time.Now()
	err := o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		var err error
		sale, err = r.Sales.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.DocAnulada {
			return fmt.Errorf("venta %s: %w", sale.Folio, domain.ErrAlreadyVoid)
		}

		if sale.Status == entity.DocCompletada {
			keys := make([]balanceKey, 0, len(sale.Items))
			for _, item := range sale.Items {
				keys = append(keys, balanceKey{WarehouseID: sale.WarehouseID, ProductID: item.ProductID})
			}
			if _, err := lockBalances(r, keys); err != nil {
				return err
			}
			for _, item := range sale.Items {
				histCost := item.HistUnitCost
				if _, _, err := kardex.RecordInTx(r, kardex.RecordInput{
					WarehouseID:   sale.WarehouseID,
					ProductID:     item.ProductID,
					Kind:          entity.KindDevolucionVenta,
					Quantity:      item.Quantity,
					UnitCostHint:  &histCost,
					ReferenceType: entity.RefVenta,
					ReferenceID:   sale.ID,
					Note:          fmt.Sprintf("ANULACION VENTA %s", sale.Folio),
					UserID:        userID,
				}, now); err != nil {
					return err
				}
			}
		}

		if err := r.Sales.UpdateStatus(sale.ID, entity.DocAnulada); err != nil {
			return err
		}
		sale.Status = entity.DocAnulada
		sale.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("ventas", "anular", "venta", sale.ID, entity.DocCompletada, entity.DocAnulada)
	return sale, nil
}
