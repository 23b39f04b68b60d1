package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/internal/application/usecase"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// TransferHandler maneja traslados entre bodegas (protegido).
type TransferHandler struct {
	uc           *usecase.TransferUseCase
	orchestrator *operations.Orchestrator
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *usecase.TransferUseCase, orchestrator *operations.Orchestrator) *TransferHandler {
	return &TransferHandler{uc: uc, orchestrator: orchestrator}
}

// Create godoc
// @Summary      Crear traslado (PENDIENTE)
// @Description  Registra el traslado sin mover stock; el stock se mueve al aprobarlo.
// @Tags         traslados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "folio, from_warehouse_id, to_warehouse_id, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/traslados [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transfer ID"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traslados/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// Approve godoc
// @Summary      Aprobar traslado
// @Description  Genera el par TRASLADO_SALIDA / TRASLADO_ENTRADA por línea en una sola
//
//	transacción; la entrada hereda el costo promedio de la bodega origen.
//
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transfer ID"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/traslados/{id}/aprobar [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	transfer, err := h.orchestrator.ApproveTransfer(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemRequest, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return dto.TransferResponse{
		ID:              t.ID,
		Folio:           t.Folio,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Status:          t.Status,
		Items:           items,
	}
}
