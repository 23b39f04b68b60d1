package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/auth"
	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/application/usecase"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	PurchaseUC    *usecase.PurchaseUseCase
	TransferUC    *usecase.TransferUseCase
	CashSessionUC *usecase.CashSessionUseCase
	Ledger        *kardex.LedgerService
	Orchestrator  *operations.Orchestrator
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de productos (protegido)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Bodegas (protegido)
	warehouses := protected.Group("/bodegas")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Kardex: consultas, ajustes manuales y reconstrucción de saldos (protegido).
	// El registro de ajustes queda restringido a admin y bodeguero.
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.Ledger)
	kardexGroup.Post("/movimientos", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), kardexHandler.RegisterAdjustment)
	kardexGroup.Get("/movimientos", kardexHandler.ListMovements)
	kardexGroup.Get("/saldos/:warehouseID/:productID", kardexHandler.GetBalance)
	kardexGroup.Post("/saldos/:warehouseID/:productID/rebuild", RequireRole(entity.RoleAdmin), kardexHandler.RebuildBalance)

	// Ventas (protegido)
	sales := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.Orchestrator)
	sales.Post("/", saleHandler.Create)
	sales.Post("/:id/anular", saleHandler.Void)

	// Compras (protegido)
	purchases := protected.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.Orchestrator)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/recibir", purchaseHandler.Receive)
	purchases.Post("/:id/anular", purchaseHandler.Void)

	// Devoluciones (protegido)
	returns := protected.Group("/devoluciones")
	returnHandler := NewReturnHandler(deps.Orchestrator)
	returns.Post("/", returnHandler.Process)
	returns.Post("/:id/anular", returnHandler.Void)

	// Traslados (protegido)
	transfers := protected.Group("/traslados")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.Orchestrator)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/aprobar", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), transferHandler.Approve)

	// Sesiones de caja (protegido)
	cash := protected.Group("/caja")
	cashHandler := NewCashSessionHandler(deps.CashSessionUC)
	cash.Post("/abrir", cashHandler.Open)
	cash.Post("/cerrar", cashHandler.Close)
}
