package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// ReceivePurchase recibe una compra PENDIENTE: registra una entrada COMPRA por línea
// al costo unitario de compra (recalcula el promedio ponderado) y marca la compra
// COMPLETADA. Recibir una compra que no está PENDIENTE se rechaza.
func (o *Orchestrator) ReceivePurchase(ctx context.Context, userID, purchaseID string) (*entity.Purchase, error) {
	if userID == "" || purchaseID == "" {
		return nil, domain.ErrInvalidInput
	}

	var purchase *entity.Purchase
	now := time.Now()
	err := o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		var err error
		purchase, err = r.Purchases.GetByID(purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status == entity.DocAnulada {
			return fmt.Errorf("compra %s: %w", purchase.Folio, domain.ErrAlreadyVoid)
		}
		if purchase.Status != entity.DocPendiente {
			return fmt.Errorf("compra %s ya recibida: %w", purchase.Folio, domain.ErrInvalidInput)
		}

		keys := make([]balanceKey, 0, len(purchase.Items))
		for _, item := range purchase.Items {
			keys = append(keys, balanceKey{WarehouseID: purchase.WarehouseID, ProductID: item.ProductID})
		}
		if _, err := lockBalances(r, keys); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			unitCost := item.UnitCost
			if _, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   purchase.WarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindCompra,
				Quantity:      item.Quantity,
				UnitCostHint:  &unitCost,
				ReferenceType: entity.RefCompra,
				ReferenceID:   purchase.ID,
				Note:          fmt.Sprintf("COMPRA %s", purchase.Folio),
				UserID:        userID,
			}, now); err != nil {
				return err
			}
		}

		if err := r.Purchases.UpdateStatus(purchase.ID, entity.DocCompletada); err != nil {
			return err
		}
		purchase.Status = entity.DocCompletada
		purchase.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("compras", "recibir", "compra", purchase.ID, entity.DocPendiente, entity.DocCompletada)
	return purchase, nil
}
