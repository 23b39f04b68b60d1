package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// SaleHandler maneja ventas y su anulación (protegido).
type SaleHandler struct {
	orchestrator *operations.Orchestrator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(orchestrator *operations.Orchestrator) *SaleHandler {
	return &SaleHandler{orchestrator: orchestrator}
}

// Create godoc
// @Summary      Crear venta
// @Description  Descuenta stock al costo promedio y congela el costo histórico por línea.
//
//	Requiere sesión de caja abierta del usuario.
//
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "folio, warehouse_id, customer_id, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	items := make([]operations.SaleLineInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, operations.SaleLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	sale, err := h.orchestrator.CreateSale(c.Context(), GetUserID(c), operations.CreateSaleInput{
		Folio:       in.Folio,
		WarehouseID: in.WarehouseID,
		CustomerID:  in.CustomerID,
		Items:       items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// Void godoc
// @Summary      Anular venta
// @Description  Reingresa el stock al costo histórico de cada línea y marca la venta ANULADA.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Sale ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/anular [post]
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	sale, err := h.orchestrator.VoidSale(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			HistUnitCost: it.HistUnitCost,
			Subtotal:     it.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:          s.ID,
		Folio:       s.Folio,
		WarehouseID: s.WarehouseID,
		CustomerID:  s.CustomerID,
		Status:      s.Status,
		Total:       s.Total,
		SoldAt:      s.SoldAt,
		Items:       items,
	}
}
