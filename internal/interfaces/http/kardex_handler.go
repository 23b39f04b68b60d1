package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// KardexHandler maneja consultas del kardex y registro de ajustes manuales (protegido).
type KardexHandler struct {
	ledger *kardex.LedgerService
}

// NewKardexHandler construye el handler.
func NewKardexHandler(ledger *kardex.LedgerService) *KardexHandler {
	return &KardexHandler{ledger: ledger}
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual o stock inicial
// @Description  Registra un movimiento AJUSTE (entrada o salida) o STOCK_INICIAL.
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "warehouse_id, product_id, kind, direction, quantity, unit_cost"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex/movimientos [post]
func (h *KardexHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	kind := entity.MovementKind(in.Kind)
	if kind != entity.KindAjuste && kind != entity.KindStockInicial {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_KIND", Message: "kind debe ser AJUSTE o STOCK_INICIAL"})
	}
	var direction entity.MovementDirection
	if kind == entity.KindAjuste {
		switch in.Direction {
		case "ENTRADA":
			direction = entity.DirectionInbound
		case "SALIDA":
			direction = entity.DirectionOutbound
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser ENTRADA o SALIDA"})
		}
	}

	mov, _, err := h.ledger.Record(c.Context(), kardex.RecordInput{
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		Kind:          kind,
		Direction:     direction,
		Quantity:      in.Quantity,
		UnitCostHint:  in.UnitCost,
		ReferenceType: entity.RefAjuste,
		Note:          in.Note,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Consultar el kardex
// @Description  Lista movimientos por producto o por bodega, con rango de fechas opcional.
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (si no hay product_id)"
// @Param        from          query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite (default 20)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/movimientos [get]
func (h *KardexHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	in.DefaultPage()

	from, err := parseDate(in.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := parseDate(in.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}

	var movements []*entity.Movement
	switch {
	case in.ProductID != "":
		movements, err = h.ledger.ListByProduct(c.Context(), in.ProductID, from, to, in.Limit, in.Offset)
	case in.WarehouseID != "":
		movements, err = h.ledger.ListByWarehouse(c.Context(), in.WarehouseID, from, to, in.Limit, in.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere product_id o warehouse_id"})
	}
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo actual de una clave (bodega, producto)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        warehouseID  path  string  true  "Warehouse ID"
// @Param        productID    path  string  true  "Product ID"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/kardex/saldos/{warehouseID}/{productID} [get]
func (h *KardexHandler) GetBalance(c *fiber.Ctx) error {
	bal, err := h.ledger.GetBalance(c.Context(), c.Params("warehouseID"), c.Params("productID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBalanceResponse(bal))
}

// RebuildBalance godoc
// @Summary      Reconstruir el saldo de una clave desde el log de movimientos
// @Description  Replay completo del kardex de la clave bajo lock; repara la proyección
//
//	si quedó desalineada.
//
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        warehouseID  path  string  true  "Warehouse ID"
// @Param        productID    path  string  true  "Product ID"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/saldos/{warehouseID}/{productID}/rebuild [post]
func (h *KardexHandler) RebuildBalance(c *fiber.Ctx) error {
	bal, err := h.ledger.RebuildBalance(c.Context(), c.Params("warehouseID"), c.Params("productID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBalanceResponse(bal))
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		WarehouseID:   m.WarehouseID,
		ProductID:     m.ProductID,
		Kind:          string(m.Kind),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		ReferenceType: string(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		Note:          m.Note,
		OccurredAt:    m.OccurredAt,
		CreatedBy:     m.CreatedBy,
	}
}

func toBalanceResponse(b *entity.Balance) dto.BalanceResponse {
	return dto.BalanceResponse{
		WarehouseID:    b.WarehouseID,
		ProductID:      b.ProductID,
		Quantity:       b.Quantity,
		AverageCost:    b.AverageCost,
		LastMovementID: b.LastMovementID,
		UpdatedAt:      b.UpdatedAt,
	}
}
