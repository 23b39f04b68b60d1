package kardex_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/application/kardex/kardextest"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newLedger(t *testing.T) (*kardex.LedgerService, *kardextest.Store) {
	t.Helper()
	store := kardextest.NewStore()
	store.SeedWarehouse(&entity.Warehouse{ID: "bod-1", Code: "B01", Name: "Central"})
	store.SeedProduct(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Teclado",
		ListCost: dec("4.50"), StockControlled: true,
	})
	return kardex.NewLedgerService(store.Runner(), store.Repos()), store
}

func costHint(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// Dos compras a costos distintos dejan el promedio ponderado; una venta consume
// al promedio sin moverlo.
func TestLedgerRecordPromedioPonderado(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	_, bal, err := ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindCompra, Quantity: dec("10"), UnitCostHint: costHint("5"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-1", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, bal.AverageCost.Equal(dec("5")))

	_, bal, err = ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindCompra, Quantity: dec("10"), UnitCostHint: costHint("7"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-2", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, bal.Quantity.Equal(dec("20")))
	assert.True(t, bal.AverageCost.Equal(dec("6")), "promedio: (10*5+10*7)/20 = 6, obtuvo %s", bal.AverageCost)

	mov, bal, err := ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindVenta, Quantity: dec("5"),
		ReferenceType: entity.RefVenta, ReferenceID: "venta-1", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("-5")), "la salida se guarda con signo negativo")
	assert.True(t, mov.UnitCost.Equal(dec("6")), "la salida consume al promedio vigente")
	assert.True(t, bal.Quantity.Equal(dec("15")))
	assert.True(t, bal.AverageCost.Equal(dec("6")), "la salida no mueve el promedio")

	// El saldo persistido referencia el último movimiento aplicado.
	persisted := store.Balance("bod-1", "prod-1")
	assert.Equal(t, mov.ID, persisted.LastMovementID)
}

// Una salida que excede el stock de un producto controlado no persiste nada:
// ni movimiento ni cambio de saldo.
func TestLedgerRecordStockInsuficienteNoPersiste(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	_, _, err := ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindCompra, Quantity: dec("3"), UnitCostHint: costHint("5"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-1", UserID: "u1",
	})
	require.NoError(t, err)
	movsBefore := len(store.Movements())

	_, _, err = ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindVenta, Quantity: dec("10"),
		ReferenceType: entity.RefVenta, ReferenceID: "venta-1", UserID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Requested.Equal(dec("10")))
	assert.True(t, stockErr.Available.Equal(dec("3")))

	assert.Len(t, store.Movements(), movsBefore, "el rechazo no debe dejar movimientos")
	assert.True(t, store.Balance("bod-1", "prod-1").Quantity.Equal(dec("3")))
}

// Un producto sin control de stock (servicio) puede venderse en negativo.
func TestLedgerRecordServicioPermiteNegativo(t *testing.T) {
	ledger, store := newLedger(t)
	store.SeedProduct(&entity.Product{
		ID: "svc-1", SKU: "SVC-1", Name: "Instalación", StockControlled: false,
	})

	_, bal, err := ledger.Record(context.Background(), kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "svc-1",
		Kind: entity.KindVenta, Quantity: dec("2"),
		ReferenceType: entity.RefVenta, ReferenceID: "venta-1", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, bal.Quantity.Equal(dec("-2")))
}

func TestLedgerRecordValidaciones(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	t.Run("cantidad no positiva", func(t *testing.T) {
		_, _, err := ledger.Record(ctx, kardex.RecordInput{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.KindCompra, Quantity: dec("0"), UnitCostHint: costHint("5"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("tipo desconocido", func(t *testing.T) {
		_, _, err := ledger.Record(ctx, kardex.RecordInput{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.MovementKind("REGALO"), Quantity: dec("1"),
		})
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, _, err := ledger.Record(ctx, kardex.RecordInput{
			WarehouseID: "bod-1", ProductID: "no-existe",
			Kind: entity.KindCompra, Quantity: dec("1"), UnitCostHint: costHint("5"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ajuste sin dirección", func(t *testing.T) {
		_, _, err := ledger.Record(ctx, kardex.RecordInput{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.KindAjuste, Quantity: dec("1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("compra sin costo", func(t *testing.T) {
		_, _, err := ledger.Record(ctx, kardex.RecordInput{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.KindCompra, Quantity: dec("1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// STOCK_INICIAL sin hint cae al costo de lista del producto.
func TestLedgerStockInicialUsaCostoDeLista(t *testing.T) {
	ledger, _ := newLedger(t)

	mov, bal, err := ledger.Record(context.Background(), kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindStockInicial, Quantity: dec("8"),
		ReferenceType: entity.RefAjuste, UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, mov.UnitCost.Equal(dec("4.50")))
	assert.True(t, bal.AverageCost.Equal(dec("4.50")))
}

// ANULACION_COMPRA es salida pero registra el costo original (hint), no el promedio.
func TestLedgerAnulacionCompraRegistraCostoOriginal(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	_, _, err := ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindCompra, Quantity: dec("10"), UnitCostHint: costHint("5"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-1", UserID: "u1",
	})
	require.NoError(t, err)
	_, _, err = ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindCompra, Quantity: dec("10"), UnitCostHint: costHint("7"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-2", UserID: "u1",
	})
	require.NoError(t, err)

	// Promedio vigente 6; la reversa de la segunda compra sale a 7 (su costo original).
	mov, _, err := ledger.Record(ctx, kardex.RecordInput{
		WarehouseID: "bod-1", ProductID: "prod-1",
		Kind: entity.KindAnulacionCompra, Quantity: dec("10"), UnitCostHint: costHint("7"),
		ReferenceType: entity.RefCompra, ReferenceID: "compra-2", UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, mov.UnitCost.Equal(dec("7")))
	assert.True(t, mov.Quantity.Equal(dec("-10")))
}

// RebuildBalance por replay del log llega exactamente al saldo incremental.
func TestLedgerRebuildBalanceCoincideConIncremental(t *testing.T) {
	ledger, store := newLedger(t)
	ctx := context.Background()

	inputs := []kardex.RecordInput{
		{Kind: entity.KindStockInicial, Quantity: dec("50"), UnitCostHint: costHint("3")},
		{Kind: entity.KindCompra, Quantity: dec("25"), UnitCostHint: costHint("4.20"), ReferenceType: entity.RefCompra, ReferenceID: "c1"},
		{Kind: entity.KindVenta, Quantity: dec("30"), ReferenceType: entity.RefVenta, ReferenceID: "v1"},
		{Kind: entity.KindCompra, Quantity: dec("10"), UnitCostHint: costHint("5.10"), ReferenceType: entity.RefCompra, ReferenceID: "c2"},
		{Kind: entity.KindVenta, Quantity: dec("12"), ReferenceType: entity.RefVenta, ReferenceID: "v2"},
	}
	for _, in := range inputs {
		in.WarehouseID = "bod-1"
		in.ProductID = "prod-1"
		in.UserID = "u1"
		_, _, err := ledger.Record(ctx, in)
		require.NoError(t, err)
	}
	incremental := store.Balance("bod-1", "prod-1")

	rebuilt, err := ledger.RebuildBalance(ctx, "bod-1", "prod-1")
	require.NoError(t, err)

	assert.True(t, rebuilt.Quantity.Equal(incremental.Quantity))
	assert.Equal(t, incremental.AverageCost.String(), rebuilt.AverageCost.String())
	assert.Equal(t, incremental.LastMovementID, rebuilt.LastMovementID)
}

func TestLedgerGetBalanceClaveInexistenteDevuelveCero(t *testing.T) {
	ledger, _ := newLedger(t)

	bal, err := ledger.GetBalance(context.Background(), "bod-1", "prod-1")
	require.NoError(t, err)
	assert.True(t, bal.Quantity.IsZero())
	assert.True(t, bal.AverageCost.IsZero())
}
