package kardex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	domkardex "github.com/jmcastillo/comercial-api/internal/domain/kardex"
)

// LedgerService punto de entrada del kardex: valida el movimiento, bloquea la fila
// de saldo (SELECT FOR UPDATE), aplica la proyección y persiste movimiento + saldo
// en forma atómica. Las lecturas usan repositorios atados al pool (sin lock).
type LedgerService struct {
	txRunner TxRunner
	reads    TxRepos
}

// NewLedgerService construye el servicio. reads son repositorios atados al pool,
// usados solo para consultas fuera de transacción.
func NewLedgerService(txRunner TxRunner, reads TxRepos) *LedgerService {
	return &LedgerService{txRunner: txRunner, reads: reads}
}

// RecordInput entrada para registrar un movimiento de kardex.
// Quantity es SIEMPRE la cantidad física positiva; la dirección la define Kind,
// nunca el signo que mande el caller (elimina bugs de signo invertido).
// UnitCostHint es obligatorio en entradas; en salidas VENTA/TRASLADO_SALIDA se ignora
// (el costo consumido se lee del saldo bloqueado). ANULACION_COMPRA es la excepción
// de salida: revierte al costo original de la compra, que viaja en el hint.
type RecordInput struct {
	WarehouseID   string
	ProductID     string
	Kind          entity.MovementKind
	Direction     entity.MovementDirection // solo para AJUSTE; los demás tipos la traen fija
	Quantity      decimal.Decimal
	UnitCostHint  *decimal.Decimal
	ReferenceType entity.ReferenceType
	ReferenceID   string
	Note          string
	UserID        string
}

// Record registra un movimiento en su propia transacción y devuelve el movimiento
// persistido junto con el saldo resultante.
func (s *LedgerService) Record(ctx context.Context, in RecordInput) (*entity.Movement, *entity.Balance, error) {
	var (
		mov *entity.Movement
		bal *entity.Balance
	)
	err := s.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		mov, bal, err = RecordInTx(r, in, time.Now())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return mov, bal, nil
}

// RecordInTx registra un movimiento usando los repositorios de la transacción del
// caller (orquestadores que agrupan varios movimientos en una sola tx).
// Garantía: inserción del movimiento y actualización del saldo ocurren juntas o no
// ocurren; ningún observador ve una sin la otra.
func RecordInTx(r TxRepos, in RecordInput, now time.Time) (*entity.Movement, *entity.Balance, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if !in.Kind.Valid() {
		return nil, nil, domain.ErrUnknownKind
	}

	dir := in.Direction
	if in.Kind != entity.KindAjuste {
		var err error
		dir, err = in.Kind.Direction()
		if err != nil {
			return nil, nil, err
		}
	}
	if dir != entity.DirectionInbound && dir != entity.DirectionOutbound {
		return nil, nil, domain.ErrInvalidInput
	}

	product, err := r.Products.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	// Bloquea la fila de saldo antes de cualquier escritura sobre la clave.
	bal, err := r.Balances.GetForUpdate(in.WarehouseID, in.ProductID)
	if err != nil {
		return nil, nil, err
	}

	var (
		newBal   *entity.Balance
		unitCost decimal.Decimal
	)
	switch dir {
	case entity.DirectionInbound:
		unitCost, err = inboundCost(in, product)
		if err != nil {
			return nil, nil, err
		}
		newBal, err = domkardex.ApplyInbound(bal, in.Quantity, unitCost)
		if err != nil {
			return nil, nil, err
		}
	case entity.DirectionOutbound:
		var consumed decimal.Decimal
		newBal, consumed, err = domkardex.ApplyOutbound(bal, in.Quantity, product.StockControlled)
		if err != nil {
			return nil, nil, err
		}
		unitCost = consumed
		if in.Kind == entity.KindAnulacionCompra {
			if in.UnitCostHint == nil {
				return nil, nil, domain.ErrInvalidInput
			}
			unitCost = *in.UnitCostHint // costo original de la compra, para reversa exacta
		}
	}

	signed := in.Quantity
	if dir == entity.DirectionOutbound {
		signed = in.Quantity.Neg()
	}
	mov := &entity.Movement{
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		Kind:          in.Kind,
		Quantity:      signed,
		UnitCost:      unitCost,
		TotalCost:     signed.Mul(unitCost),
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Note:          in.Note,
		OccurredAt:    now,
		CreatedBy:     in.UserID,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, nil, err
	}

	newBal.LastMovementID = mov.ID
	newBal.UpdatedAt = now
	if err := r.Balances.Upsert(newBal); err != nil {
		return nil, nil, err
	}
	return mov, newBal, nil
}

// inboundCost resuelve el costo de una entrada: el hint es obligatorio salvo en
// AJUSTE y STOCK_INICIAL, donde cae al costo de lista del producto.
func inboundCost(in RecordInput, product *entity.Product) (decimal.Decimal, error) {
	if in.UnitCostHint != nil {
		if in.UnitCostHint.LessThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return *in.UnitCostHint, nil
	}
	if in.Kind == entity.KindAjuste || in.Kind == entity.KindStockInicial {
		return product.ListCost, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// RebuildBalance reconstruye el saldo de una clave por replay completo del log y lo
// persiste, bajo el mismo lock que usan las escrituras. Procedimiento de
// auditoría/reparación: la tabla de saldos es un cache del log de movimientos.
func (s *LedgerService) RebuildBalance(ctx context.Context, warehouseID, productID string) (*entity.Balance, error) {
	var rebuilt *entity.Balance
	err := s.txRunner.Run(ctx, func(r TxRepos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, err := r.Balances.GetForUpdate(warehouseID, productID); err != nil {
			return err
		}
		movements, err := r.Movements.ListByKey(warehouseID, productID, 0)
		if err != nil {
			return err
		}
		rebuilt, err = domkardex.Rebuild(warehouseID, productID, movements, product.StockControlled)
		if err != nil {
			return err
		}
		rebuilt.UpdatedAt = time.Now()
		return r.Balances.Upsert(rebuilt)
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}

// GetBalance lectura de saldo sin bloqueo, para consultas de solo lectura.
// El techo observado puede moverse entre esta lectura y una escritura posterior;
// quien necesite leer-y-escribir consistente debe hacerlo dentro de una tx con lock
// (exactamente lo que hacen CreateSale y ProcessReturn).
func (s *LedgerService) GetBalance(ctx context.Context, warehouseID, productID string) (*entity.Balance, error) {
	return s.reads.Balances.Get(warehouseID, productID)
}

// ListByProduct kardex de un producto en un rango de fechas (paginado).
func (s *LedgerService) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return s.reads.Movements.ListByProduct(productID, from, to, limit, offset)
}

// ListByWarehouse kardex de una bodega en un rango de fechas (paginado).
func (s *LedgerService) ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return s.reads.Movements.ListByWarehouse(warehouseID, from, to, limit, offset)
}
