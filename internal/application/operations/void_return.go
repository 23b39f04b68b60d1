package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// VoidReturn anula una devolución: registra una salida AJUSTE por línea que
// compensa la entrada de la devolución y marca el documento ANULADA. Una
// devolución ANULADA deja de contar para el cupo devolvible de la venta origen,
// así que el cupo queda liberado para una devolución posterior.
func (o *Orchestrator) VoidReturn(ctx context.Context, userID, returnID string) (*entity.SaleReturn, error) {
	if userID == "" || returnID == "" {
		return nil, domain.ErrInvalidInput
	}

	var ret *entity.SaleReturn
	now := time.Now()
	err := o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		var err error
		ret, err = r.Returns.GetByID(returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if ret.Status == entity.DocAnulada {
			return fmt.Errorf("devolución %s: %w", ret.ID, domain.ErrAlreadyVoid)
		}
		sale, err := r.Sales.GetByID(ret.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		keys := make([]balanceKey, 0, len(ret.Items))
		for _, item := range ret.Items {
			keys = append(keys, balanceKey{WarehouseID: sale.WarehouseID, ProductID: item.ProductID})
		}
		if _, err := lockBalances(r, keys); err != nil {
			return err
		}

		for _, item := range ret.Items {
			if _, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   sale.WarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindAjuste,
				Direction:     entity.DirectionOutbound,
				Quantity:      item.Quantity,
				ReferenceType: entity.RefDevolucion,
				ReferenceID:   ret.ID,
				Note:          fmt.Sprintf("ANULACION DEVOLUCION VENTA %s", sale.Folio),
				UserID:        userID,
			}, now); err != nil {
				return err
			}
		}

		if err := r.Returns.UpdateStatus(ret.ID, entity.DocAnulada); err != nil {
			return err
		}
		ret.Status = entity.DocAnulada
		ret.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("devoluciones", "anular", "devolucion", ret.ID, entity.DocCompletada, entity.DocAnulada)
	return ret, nil
}
