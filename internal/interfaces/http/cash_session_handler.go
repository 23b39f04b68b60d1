package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/usecase"
)

// CashSessionHandler maneja apertura y cierre de sesiones de caja (protegido).
type CashSessionHandler struct {
	uc *usecase.CashSessionUseCase
}

// NewCashSessionHandler construye el handler.
func NewCashSessionHandler(uc *usecase.CashSessionUseCase) *CashSessionHandler {
	return &CashSessionHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Description  Un operador tiene a lo más una sesión abierta; abrir con una ya abierta
//
//	responde 409.
//
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashSessionRequest  true  "opening_amount"
// @Success      201   {object}  dto.CashSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/abrir [post]
func (h *CashSessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Open(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashSessionRequest  true  "declared_amount"
// @Success      200   {object}  dto.CashSessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/cerrar [post]
func (h *CashSessionHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Close(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(session)
}
