package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// VoidPurchase anula una compra. Si estaba COMPLETADA, registra una salida
// ANULACION_COMPRA por línea al costo original de compra; los movimientos COMPRA
// originales no se tocan (la historia se preserva, la reversa es compensatoria).
// Una compra PENDIENTE pasa a ANULADA sin movimientos. Ya ANULADA se rechaza.
func (o *Orchestrator) VoidPurchase(ctx context.Context, userID, purchaseID string) (*entity.Purchase, error) {
	if userID == "" || purchaseID == "" {
		return nil, domain.ErrInvalidInput
	}

	var purchase *entity.Purchase
	var priorStatus string
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
		priorStatus = purchase.Status

		if purchase.Status == entity.DocCompletada {
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
					Kind:          entity.KindAnulacionCompra,
					Quantity:      item.Quantity,
					UnitCostHint:  &unitCost, // reversa al costo original de la compra
					ReferenceType: entity.RefCompra,
					ReferenceID:   purchase.ID,
					Note:          fmt.Sprintf("ANULACION COMPRA %s", purchase.Folio),
					UserID:        userID,
				}, now); err != nil {
					return err
				}
			}
		}

		if err := r.Purchases.UpdateStatus(purchase.ID, entity.DocAnulada); err != nil {
			return err
		}
		purchase.Status = entity.DocAnulada
		purchase.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("compras", "anular", "compra", purchase.ID, priorStatus, entity.DocAnulada)
	return purchase, nil
}
