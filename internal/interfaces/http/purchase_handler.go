package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/application/usecase"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// PurchaseHandler maneja compras: creación, recepción y anulación (protegido).
type PurchaseHandler struct {
	uc           *usecase.PurchaseUseCase
	orchestrator *operations.Orchestrator
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase, orchestrator *operations.Orchestrator) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, orchestrator: orchestrator}
}

// Create godoc
// @Summary      Crear compra (PENDIENTE)
// @Description  Registra la compra sin tocar stock; el inventario entra al recibirla.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "folio, warehouse_id, supplier_id, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(purchase))
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase ID"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase))
}

// Receive godoc
// @Summary      Recibir compra
// @Description  Genera los movimientos COMPRA al costo de cada línea y recalcula el
//
//	costo promedio; la compra pasa a COMPLETADA.
//
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase ID"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/recibir [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	purchase, err := h.orchestrator.ReceivePurchase(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase))
}

// Void godoc
// @Summary      Anular compra
// @Description  Si la compra fue recibida, saca el stock con movimientos
//
//	ANULACION_COMPRA al costo original de compra; la compra pasa a ANULADA.
//
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase ID"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/anular [post]
func (h *PurchaseHandler) Void(c *fiber.Ctx) error {
	purchase, err := h.orchestrator.VoidPurchase(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(purchase))
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal,
		})
	}
	return dto.PurchaseResponse{
		ID:          p.ID,
		Folio:       p.Folio,
		WarehouseID: p.WarehouseID,
		SupplierID:  p.SupplierID,
		Status:      p.Status,
		Total:       p.Total,
		CreatedAt:   p.CreatedAt,
		Items:       items,
	}
}
