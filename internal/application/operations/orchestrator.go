package operations

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/pkg/logger"
)

// Orchestrator coordina las operaciones de negocio multi-movimiento (venta, compra,
// devolución, traslado, anulaciones) como unidades atómicas: cada operación corre en
// una sola transacción de BD y o se aplica completa o se revierte completa.
// Todas las operaciones reciben el userID explícito del actor; nada se lee de
// estado global de autenticación.
type Orchestrator struct {
	txRunner     kardex.TxRunner
	sessions     CashSessionGuard
	audit        AuditSink
	log          *logger.Logger
	returnWindow time.Duration
}

// NewOrchestrator construye el orquestador. returnWindowDays es la ventana de
// política para devoluciones sobre una venta.
func NewOrchestrator(
	txRunner kardex.TxRunner,
	sessions CashSessionGuard,
	audit AuditSink,
	log *logger.Logger,
	returnWindowDays int,
) *Orchestrator {
	return &Orchestrator{
		txRunner:     txRunner,
		sessions:     sessions,
		audit:        audit,
		log:          log,
		returnWindow: time.Duration(returnWindowDays) * 24 * time.Hour,
	}
}

// balanceKey clave de saldo (bodega, producto).
type balanceKey struct {
	WarehouseID string
	ProductID   string
}

// lockBalances bloquea las filas de saldo de todas las claves en orden ascendente
// determinístico (bodega, producto) y devuelve los saldos bajo lock. El orden fijo
// evita deadlocks entre dos operaciones multi-línea que comparten productos en
// órdenes distintos. Se deduplica: una clave se bloquea una sola vez.
func lockBalances(r kardex.TxRepos, keys []balanceKey) (map[balanceKey]*entity.Balance, error) {
	uniq := make(map[balanceKey]struct{}, len(keys))
	ordered := make([]balanceKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := uniq[k]; ok {
			continue
		}
		uniq[k] = struct{}{}
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].WarehouseID != ordered[j].WarehouseID {
			return ordered[i].WarehouseID < ordered[j].WarehouseID
		}
		return ordered[i].ProductID < ordered[j].ProductID
	})

	locked := make(map[balanceKey]*entity.Balance, len(ordered))
	for _, k := range ordered {
		bal, err := r.Balances.GetForUpdate(k.WarehouseID, k.ProductID)
		if err != nil {
			return nil, err
		}
		locked[k] = bal
	}
	return locked, nil
}

// requireStock valida, con los saldos ya bloqueados, que cada producto con control
// de stock alcance para la cantidad agregada pedida. Falla antes de registrar
// cualquier movimiento de la operación.
func requireStock(r kardex.TxRepos, locked map[balanceKey]*entity.Balance, warehouseID string, needs map[string]decimal.Decimal) error {
	ids := make([]string, 0, len(needs))
	for pid := range needs {
		ids = append(ids, pid)
	}
	sort.Strings(ids)
	for _, pid := range ids {
		product, err := r.Products.GetByID(pid)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.StockControlled {
			continue
		}
		bal := locked[balanceKey{WarehouseID: warehouseID, ProductID: pid}]
		if bal == nil {
			bal = entity.NewBalance(warehouseID, pid)
		}
		if bal.Quantity.LessThan(needs[pid]) {
			return &domain.InsufficientStockError{
				WarehouseID: warehouseID,
				ProductID:   pid,
				Requested:   needs[pid],
				Available:   bal.Quantity,
			}
		}
	}
	return nil
}

// recordAudit registro de auditoría post-commit, best-effort.
func (o *Orchestrator) recordAudit(dom, action, entityType, entityID string, before, after any) {
	if o.audit == nil {
		return
	}
	o.audit.Record(dom, action, entityType, entityID, before, after)
}
