package kardex

import (
	"context"

	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que un orquestador persista dentro de fn comparte el mismo Commit/Rollback.
type TxRepos struct {
	Movements    repository.MovementRepository
	Balances     repository.BalanceRepository
	Products     repository.ProductRepository
	Warehouses   repository.WarehouseRepository
	Sales        repository.SaleRepository
	Purchases    repository.PurchaseRepository
	Returns      repository.ReturnRepository
	Transfers    repository.TransferRepository
	CashSessions repository.CashSessionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de kardex: si fn retorna error,
// rollback completo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
