package operations_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/application/kardex/kardextest"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stubGuard sesión de caja controlable por test.
type stubGuard struct {
	open bool
}

func (g *stubGuard) HasOpenSession(userID string) (bool, error) {
	return g.open, nil
}

type fixture struct {
	store  *kardextest.Store
	orch   *operations.Orchestrator
	ledger *kardex.LedgerService
	guard  *stubGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kardextest.NewStore()
	store.SeedWarehouse(&entity.Warehouse{ID: "bod-1", Code: "B01", Name: "Central"})
	store.SeedWarehouse(&entity.Warehouse{ID: "bod-2", Code: "B02", Name: "Sucursal"})
	store.SeedProduct(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Teclado",
		Price: dec("10"), ListCost: dec("4"), StockControlled: true,
	})
	store.SeedProduct(&entity.Product{
		ID: "svc-1", SKU: "SVC-1", Name: "Instalación",
		Price: dec("25"), StockControlled: false,
	})
	store.SeedOpenCashSession("caja-1", "cajero-1")

	guard := &stubGuard{open: true}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return &fixture{
		store:  store,
		orch:   operations.NewOrchestrator(store.Runner(), guard, nil, log, 30),
		ledger: kardex.NewLedgerService(store.Runner(), store.Repos()),
		guard:  guard,
	}
}

// seedStock carga inventario inicial de una clave a un costo dado.
func (f *fixture) seedStock(t *testing.T, warehouseID, productID, qty, cost string) {
	t.Helper()
	c := dec(cost)
	_, _, err := f.ledger.Record(context.Background(), kardex.RecordInput{
		WarehouseID: warehouseID, ProductID: productID,
		Kind: entity.KindStockInicial, Quantity: dec(qty), UnitCostHint: &c,
		ReferenceType: entity.RefAjuste, UserID: "setup",
	})
	require.NoError(t, err)
}

// ── Ventas ───────────────────────────────────────────────────────────────────

func TestCreateSaleFeliz(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")

	sale, err := f.orch.CreateSale(context.Background(), "cajero-1", operations.CreateSaleInput{
		Folio:       "F-001",
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("10")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DocCompletada, sale.Status)
	assert.True(t, sale.Total.Equal(dec("30")))
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].HistUnitCost.Equal(dec("4")), "la línea congela el costo promedio consumido")

	bal := f.store.Balance("bod-1", "prod-1")
	assert.True(t, bal.Quantity.Equal(dec("7")))
	assert.True(t, bal.AverageCost.Equal(dec("4")))

	// STOCK_INICIAL + VENTA
	movs := f.store.Movements()
	require.Len(t, movs, 2)
	assert.Equal(t, entity.KindVenta, movs[1].Kind)
	assert.True(t, movs[1].Quantity.Equal(dec("-3")))
	assert.Equal(t, sale.ID, movs[1].ReferenceID)

	assert.NotNil(t, f.store.Sale(sale.ID), "la venta queda persistida")
}

func TestCreateSaleSinSesionDeCaja(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	f.guard.open = false

	_, err := f.orch.CreateSale(context.Background(), "cajero-1", operations.CreateSaleInput{
		Folio:       "F-001",
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenCashSession)
	assert.Len(t, f.store.Movements(), 1, "solo el stock inicial")
}

// Dos líneas del mismo producto se validan por su suma; si no alcanza, no queda
// ni venta ni movimiento.
func TestCreateSaleStockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "5", "4")

	_, err := f.orch.CreateSale(context.Background(), "cajero-1", operations.CreateSaleInput{
		Folio:       "F-002",
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("10")},
			{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("10")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Requested.Equal(dec("6")))
	assert.True(t, stockErr.Available.Equal(dec("5")))

	assert.Len(t, f.store.Movements(), 1, "ningún movimiento de venta quedó registrado")
	assert.True(t, f.store.Balance("bod-1", "prod-1").Quantity.Equal(dec("5")))
}

func TestCreateSaleServicioSinStock(t *testing.T) {
	f := newFixture(t)

	sale, err := f.orch.CreateSale(context.Background(), "cajero-1", operations.CreateSaleInput{
		Folio:       "F-003",
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "svc-1", Quantity: dec("2"), UnitPrice: dec("25")},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("50")))
	assert.True(t, f.store.Balance("bod-1", "svc-1").Quantity.Equal(dec("-2")), "los servicios pueden quedar en negativo")
}

func TestCreateSaleValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("sin líneas", func(t *testing.T) {
		_, err := f.orch.CreateSale(ctx, "cajero-1", operations.CreateSaleInput{
			Folio: "F-004", WarehouseID: "bod-1",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("precio negativo", func(t *testing.T) {
		_, err := f.orch.CreateSale(ctx, "cajero-1", operations.CreateSaleInput{
			Folio: "F-004", WarehouseID: "bod-1",
			Items: []operations.SaleLineInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("-1")}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bodega inexistente", func(t *testing.T) {
		_, err := f.orch.CreateSale(ctx, "cajero-1", operations.CreateSaleInput{
			Folio: "F-004", WarehouseID: "no-existe",
			Items: []operations.SaleLineInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")}},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVoidSaleCancelaExactamente(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()

	sale, err := f.orch.CreateSale(ctx, "cajero-1", operations.CreateSaleInput{
		Folio:       "F-005",
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("10")},
		},
	})
	require.NoError(t, err)

	voided, err := f.orch.VoidSale(ctx, "cajero-1", sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAnulada, voided.Status)
	assert.Equal(t, entity.DocAnulada, f.store.Sale(sale.ID).Status)

	// El saldo vuelve exactamente al estado previo a la venta.
	bal := f.store.Balance("bod-1", "prod-1")
	assert.True(t, bal.Quantity.Equal(dec("10")))
	assert.True(t, bal.AverageCost.Equal(dec("4")))

	// La reversa es una entrada DEVOLUCION_VENTA al costo histórico de la línea.
	movs := f.store.Movements()
	require.Len(t, movs, 3)
	assert.Equal(t, entity.KindDevolucionVenta, movs[2].Kind)
	assert.True(t, movs[2].Quantity.Equal(dec("3")))
	assert.True(t, movs[2].UnitCost.Equal(dec("4")))

	// Anular dos veces se rechaza y no agrega movimientos.
	_, err = f.orch.VoidSale(ctx, "cajero-1", sale.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoid)
	assert.Len(t, f.store.Movements(), 3)
}

func TestVoidSaleInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.orch.VoidSale(context.Background(), "cajero-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Compras ──────────────────────────────────────────────────────────────────

func TestReceivePurchaseRecalculaPromedio(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()

	f.store.SeedPurchase(&entity.Purchase{
		ID: "compra-1", Folio: "OC-001", WarehouseID: "bod-1", Status: entity.DocPendiente,
		Items: []entity.PurchaseItem{
			{ID: "ci-1", PurchaseID: "compra-1", ProductID: "prod-1", Quantity: dec("10"), UnitCost: dec("6")},
		},
	})

	purchase, err := f.orch.ReceivePurchase(ctx, "bodeguero-1", "compra-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocCompletada, purchase.Status)

	bal := f.store.Balance("bod-1", "prod-1")
	assert.True(t, bal.Quantity.Equal(dec("20")))
	assert.True(t, bal.AverageCost.Equal(dec("5")), "promedio: (10*4+10*6)/20 = 5")

	// Recibir de nuevo una compra ya COMPLETADA se rechaza.
	_, err = f.orch.ReceivePurchase(ctx, "bodeguero-1", "compra-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoidPurchaseReversaAlCostoOriginal(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()

	f.store.SeedPurchase(&entity.Purchase{
		ID: "compra-1", Folio: "OC-002", WarehouseID: "bod-1", Status: entity.DocPendiente,
		Items: []entity.PurchaseItem{
			{ID: "ci-1", PurchaseID: "compra-1", ProductID: "prod-1", Quantity: dec("10"), UnitCost: dec("6")},
		},
	})
	_, err := f.orch.ReceivePurchase(ctx, "bodeguero-1", "compra-1")
	require.NoError(t, err)

	voided, err := f.orch.VoidPurchase(ctx, "bodeguero-1", "compra-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocAnulada, voided.Status)

	// El movimiento de reversa documenta el costo original de la compra; el saldo
	// descuenta al promedio vigente (las salidas nunca mueven el promedio).
	movs := f.store.Movements()
	last := movs[len(movs)-1]
	assert.Equal(t, entity.KindAnulacionCompra, last.Kind)
	assert.True(t, last.Quantity.Equal(dec("-10")))
	assert.True(t, last.UnitCost.Equal(dec("6")))

	bal := f.store.Balance("bod-1", "prod-1")
	assert.True(t, bal.Quantity.Equal(dec("10")))
	assert.True(t, bal.AverageCost.Equal(dec("5")))

	_, err = f.orch.VoidPurchase(ctx, "bodeguero-1", "compra-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoid)
}

// Anular una compra PENDIENTE no genera movimientos: nunca entró stock.
func TestVoidPurchasePendienteSinMovimientos(t *testing.T) {
	f := newFixture(t)
	f.store.SeedPurchase(&entity.Purchase{
		ID: "compra-1", Folio: "OC-003", WarehouseID: "bod-1", Status: entity.DocPendiente,
		Items: []entity.PurchaseItem{
			{ID: "ci-1", PurchaseID: "compra-1", ProductID: "prod-1", Quantity: dec("5"), UnitCost: dec("6")},
		},
	})

	voided, err := f.orch.VoidPurchase(context.Background(), "bodeguero-1", "compra-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocAnulada, voided.Status)
	assert.Empty(t, f.store.Movements())
}

// ── Devoluciones ─────────────────────────────────────────────────────────────

// createSale helper: venta COMPLETADA de qty unidades de prod-1.
func (f *fixture) createSale(t *testing.T, folio, qty string) *entity.Sale {
	t.Helper()
	sale, err := f.orch.CreateSale(context.Background(), "cajero-1", operations.CreateSaleInput{
		Folio:       folio,
		WarehouseID: "bod-1",
		Items: []operations.SaleLineInput{
			{ProductID: "prod-1", Quantity: dec(qty), UnitPrice: dec("10")},
		},
	})
	require.NoError(t, err)
	return sale
}

func TestProcessReturnEntraAlCostoHistorico(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()
	sale := f.createSale(t, "F-010", "5")

	// Una compra posterior mueve el promedio; la devolución debe ignorarlo.
	f.store.SeedPurchase(&entity.Purchase{
		ID: "compra-1", Folio: "OC-010", WarehouseID: "bod-1", Status: entity.DocPendiente,
		Items: []entity.PurchaseItem{
			{ID: "ci-1", PurchaseID: "compra-1", ProductID: "prod-1", Quantity: dec("15"), UnitCost: dec("8")},
		},
	})
	_, err := f.orch.ReceivePurchase(ctx, "bodeguero-1", "compra-1")
	require.NoError(t, err)

	ret, err := f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Reason: "producto defectuoso",
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DocCompletada, ret.Status)
	require.Len(t, ret.Items, 1)
	assert.True(t, ret.Items[0].UnitCost.Equal(dec("4")), "la línea devuelta usa el costo histórico de la venta")

	movs := f.store.Movements()
	last := movs[len(movs)-1]
	assert.Equal(t, entity.KindDevolucionVenta, last.Kind)
	assert.Equal(t, entity.RefDevolucion, last.ReferenceType)
	assert.Equal(t, ret.ID, last.ReferenceID)
	assert.True(t, last.UnitCost.Equal(dec("4")))
}

func TestProcessReturnCupoAgotado(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()
	sale := f.createSale(t, "F-011", "5")

	_, err := f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("3")}},
	})
	require.NoError(t, err)

	movsBefore := len(f.store.Movements())
	_, err = f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("3")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnNotEligible)

	var eligErr *domain.ReturnNotEligibleError
	require.ErrorAs(t, err, &eligErr)
	assert.Equal(t, "cupo", eligErr.Reason)
	assert.True(t, eligErr.Requested.Equal(dec("3")))
	assert.True(t, eligErr.Available.Equal(dec("2")), "vendidas 5 menos 3 ya devueltas")

	assert.Len(t, f.store.Movements(), movsBefore, "la devolución rechazada no deja movimientos")
}

func TestProcessReturnFueraDeVentana(t *testing.T) {
	f := newFixture(t)
	f.store.SeedSale(&entity.Sale{
		ID: "venta-vieja", Folio: "F-012", WarehouseID: "bod-1",
		Status: entity.DocCompletada,
		SoldAt: time.Now().Add(-40 * 24 * time.Hour),
		Items: []entity.SaleItem{
			{ID: "si-1", SaleID: "venta-vieja", ProductID: "prod-1", Quantity: dec("2"), UnitPrice: dec("10"), HistUnitCost: dec("4")},
		},
	})

	_, err := f.orch.ProcessReturn(context.Background(), "cajero-1", operations.ProcessReturnInput{
		SaleID: "venta-vieja",
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnNotEligible)

	var eligErr *domain.ReturnNotEligibleError
	require.ErrorAs(t, err, &eligErr)
	assert.Equal(t, "ventana", eligErr.Reason)
}

func TestProcessReturnVentaAnulada(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()
	sale := f.createSale(t, "F-013", "2")
	_, err := f.orch.VoidSale(ctx, "cajero-1", sale.ID)
	require.NoError(t, err)

	_, err = f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnNotEligible)

	var eligErr *domain.ReturnNotEligibleError
	require.ErrorAs(t, err, &eligErr)
	assert.Equal(t, "estado", eligErr.Reason)
}

func TestProcessReturnSinSesionDeCaja(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	sale := f.createSale(t, "F-014", "2")

	f.guard.open = false
	_, err := f.orch.ProcessReturn(context.Background(), "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenCashSession)
}

// Anular una devolución libera el cupo: una devolución posterior sobre la misma
// venta vuelve a caber.
func TestVoidReturnLiberaCupo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()
	sale := f.createSale(t, "F-015", "5")

	first, err := f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("5")}},
	})
	require.NoError(t, err)

	// Cupo agotado.
	_, err = f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnNotEligible)

	voided, err := f.orch.VoidReturn(ctx, "cajero-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAnulada, voided.Status)
	assert.Equal(t, entity.DocAnulada, f.store.Return(first.ID).Status)

	// La anulación compensa la entrada con una salida AJUSTE.
	movs := f.store.Movements()
	last := movs[len(movs)-1]
	assert.Equal(t, entity.KindAjuste, last.Kind)
	assert.True(t, last.Quantity.Equal(dec("-5")))

	// El cupo quedó libre.
	second, err := f.orch.ProcessReturn(ctx, "cajero-1", operations.ProcessReturnInput{
		SaleID: sale.ID,
		Items:  []operations.ReturnLineInput{{ProductID: "prod-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DocCompletada, second.Status)

	_, err = f.orch.VoidReturn(ctx, "cajero-1", first.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoid)
}

// ── Traslados ────────────────────────────────────────────────────────────────

func TestApproveTransferParAtomico(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "10", "4")
	ctx := context.Background()

	f.store.SeedTransfer(&entity.Transfer{
		ID: "tras-1", Folio: "T-001",
		FromWarehouseID: "bod-1", ToWarehouseID: "bod-2",
		Status: entity.DocPendiente,
		Items: []entity.TransferItem{
			{ID: "ti-1", TransferID: "tras-1", ProductID: "prod-1", Quantity: dec("4")},
		},
	})

	transfer, err := f.orch.ApproveTransfer(ctx, "bodeguero-1", "tras-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DocCompletada, transfer.Status)

	origin := f.store.Balance("bod-1", "prod-1")
	dest := f.store.Balance("bod-2", "prod-1")
	assert.True(t, origin.Quantity.Equal(dec("6")))
	assert.True(t, dest.Quantity.Equal(dec("4")))
	assert.True(t, dest.AverageCost.Equal(dec("4")), "el destino hereda el costo promedio del origen")

	movs := f.store.Movements()
	require.Len(t, movs, 3)
	assert.Equal(t, entity.KindTrasladoSalida, movs[1].Kind)
	assert.Equal(t, "bod-1", movs[1].WarehouseID)
	assert.Equal(t, entity.KindTrasladoEntrada, movs[2].Kind)
	assert.Equal(t, "bod-2", movs[2].WarehouseID)
	assert.True(t, movs[1].UnitCost.Equal(movs[2].UnitCost), "salida y entrada al mismo costo")

	// Aprobar un traslado ya COMPLETADO se rechaza.
	_, err = f.orch.ApproveTransfer(ctx, "bodeguero-1", "tras-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApproveTransferStockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "bod-1", "prod-1", "3", "4")

	f.store.SeedTransfer(&entity.Transfer{
		ID: "tras-1", Folio: "T-002",
		FromWarehouseID: "bod-1", ToWarehouseID: "bod-2",
		Status: entity.DocPendiente,
		Items: []entity.TransferItem{
			{ID: "ti-1", TransferID: "tras-1", ProductID: "prod-1", Quantity: dec("5")},
		},
	})

	_, err := f.orch.ApproveTransfer(context.Background(), "bodeguero-1", "tras-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada cambió: ni origen, ni destino, ni el estado del documento.
	assert.True(t, f.store.Balance("bod-1", "prod-1").Quantity.Equal(dec("3")))
	assert.True(t, f.store.Balance("bod-2", "prod-1").Quantity.IsZero())
	assert.Len(t, f.store.Movements(), 1)
}

func TestApproveTransferMismaBodega(t *testing.T) {
	f := newFixture(t)
	f.store.SeedTransfer(&entity.Transfer{
		ID: "tras-1", Folio: "T-003",
		FromWarehouseID: "bod-1", ToWarehouseID: "bod-1",
		Status: entity.DocPendiente,
		Items: []entity.TransferItem{
			{ID: "ti-1", TransferID: "tras-1", ProductID: "prod-1", Quantity: dec("1")},
		},
	})

	_, err := f.orch.ApproveTransfer(context.Background(), "bodeguero-1", "tras-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
