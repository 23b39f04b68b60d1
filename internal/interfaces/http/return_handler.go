package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// ReturnHandler maneja devoluciones sobre ventas y su anulación (protegido).
type ReturnHandler struct {
	orchestrator *operations.Orchestrator
}

// NewReturnHandler construye el handler.
func NewReturnHandler(orchestrator *operations.Orchestrator) *ReturnHandler {
	return &ReturnHandler{orchestrator: orchestrator}
}

// Process godoc
// @Summary      Procesar devolución sobre una venta
// @Description  Valida estado, ventana de política y cupo devolvible por producto;
//
//	reingresa stock al costo histórico de la venta. Requiere sesión de caja abierta.
//
// @Tags         devoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessReturnRequest  true  "sale_id, reason, items"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/devoluciones [post]
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	items := make([]operations.ReturnLineInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, operations.ReturnLineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	ret, err := h.orchestrator.ProcessReturn(c.Context(), GetUserID(c), operations.ProcessReturnInput{
		SaleID: in.SaleID,
		Reason: in.Reason,
		Items:  items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReturnResponse(ret))
}

// Void godoc
// @Summary      Anular devolución
// @Description  Revierte el reingreso de stock y libera el cupo devolvible de la venta.
// @Tags         devoluciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Return ID"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devoluciones/{id}/anular [post]
func (h *ReturnHandler) Void(c *fiber.Ctx) error {
	ret, err := h.orchestrator.VoidReturn(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toReturnResponse(ret))
}

func toReturnResponse(r *entity.SaleReturn) dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReturnItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return dto.ReturnResponse{
		ID:     r.ID,
		SaleID: r.SaleID,
		Status: r.Status,
		Reason: r.Reason,
		Items:  items,
	}
}
