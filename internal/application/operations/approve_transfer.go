package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// ApproveTransfer aprueba un traslado PENDIENTE: por cada línea registra el par
// TRASLADO_SALIDA en origen y TRASLADO_ENTRADA en destino, ambos al costo promedio
// de la bodega origen al momento del traslado, como par atómico dentro de una sola
// transacción. Si el stock en origen no alcanza, ningún saldo cambia.
// Los locks de origen y destino se toman en orden ascendente (bodega, producto).
func (o *Orchestrator) ApproveTransfer(ctx context.Context, userID, transferID string) (*entity.Transfer, error) {
	if userID == "" || transferID == "" {
		return nil, domain.ErrInvalidInput
	}

	var transfer *entity.Transfer
	now := time.Now()
	err := o.txRunner.Run(ctx, func(r kardex.TxRepos) error {
		var err error
		transfer, err = r.Transfers.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status == entity.DocAnulada {
			return fmt.Errorf("traslado %s: %w", transfer.Folio, domain.ErrAlreadyVoid)
		}
		if transfer.Status != entity.DocPendiente {
			return fmt.Errorf("traslado %s ya aprobado: %w", transfer.Folio, domain.ErrInvalidInput)
		}
		if transfer.FromWarehouseID == transfer.ToWarehouseID {
			return domain.ErrInvalidInput
		}

		keys := make([]balanceKey, 0, 2*len(transfer.Items))
		needs := make(map[string]decimal.Decimal, len(transfer.Items))
		for _, item := range transfer.Items {
			keys = append(keys,
				balanceKey{WarehouseID: transfer.FromWarehouseID, ProductID: item.ProductID},
				balanceKey{WarehouseID: transfer.ToWarehouseID, ProductID: item.ProductID},
			)
			needs[item.ProductID] = needs[item.ProductID].Add(item.Quantity)
		}
		locked, err := lockBalances(r, keys)
		if err != nil {
			return err
		}
		if err := requireStock(r, locked, transfer.FromWarehouseID, needs); err != nil {
			return err
		}

		for _, item := range transfer.Items {
			outMov, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   transfer.FromWarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindTrasladoSalida,
				Quantity:      item.Quantity,
				ReferenceType: entity.RefTraslado,
				ReferenceID:   transfer.ID,
				Note:          fmt.Sprintf("TRASLADO %s SALIDA", transfer.Folio),
				UserID:        userID,
			}, now)
			if err != nil {
				return err
			}
			// La entrada en destino hereda el costo consumido en origen.
			inCost := outMov.UnitCost
			if _, _, err := kardex.RecordInTx(r, kardex.RecordInput{
				WarehouseID:   transfer.ToWarehouseID,
				ProductID:     item.ProductID,
				Kind:          entity.KindTrasladoEntrada,
				Quantity:      item.Quantity,
				UnitCostHint:  &inCost,
				ReferenceType: entity.RefTraslado,
				ReferenceID:   transfer.ID,
				Note:          fmt.Sprintf("TRASLADO %s ENTRADA", transfer.Folio),
				UserID:        userID,
			}, now); err != nil {
				return err
			}
		}

		if err := r.Transfers.UpdateStatus(transfer.ID, entity.DocCompletada); err != nil {
			return err
		}
		transfer.Status = entity.DocCompletada
		transfer.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.recordAudit("traslados", "aprobar", "traslado", transfer.ID, entity.DocPendiente, entity.DocCompletada)
	return transfer, nil
}
