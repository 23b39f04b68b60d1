package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sentinelas, sin dependencias externas).
// Los errores con contexto (stock insuficiente, devolución fuera de política) se modelan
// como structs que responden errors.Is contra su sentinela, para que el caller pueda
// construir mensajes con la clave afectada y las cantidades en juego.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrUnknownKind        = errors.New("tipo de movimiento desconocido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyVoid        = errors.New("documento ya anulado")
	ErrNoOpenCashSession  = errors.New("no hay sesión de caja abierta")
	ErrReturnNotEligible  = errors.New("venta no elegible para devolución")
	ErrConflict           = errors.New("conflicto de concurrencia")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError indica que una salida dejaría el saldo negativo en un
// producto con control de stock. Available es el saldo bajo el lock al momento del rechazo.
type InsufficientStockError struct {
	WarehouseID string
	ProductID   string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s en bodega %s (solicitado %s, disponible %s)",
		e.ProductID, e.WarehouseID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ReturnNotEligibleError indica por qué una devolución fue rechazada en validación:
// estado de la venta, ventana de política vencida o cantidad por encima del cupo restante.
type ReturnNotEligibleError struct {
	SaleID    string
	ProductID string // vacío si el rechazo es a nivel de venta (estado/ventana)
	Reason    string // "estado", "ventana", "cupo"
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *ReturnNotEligibleError) Error() string {
	switch e.Reason {
	case "cupo":
		return fmt.Sprintf("devolución excede el cupo: venta %s producto %s (solicitado %s, disponible %s)",
			e.SaleID, e.ProductID, e.Requested.String(), e.Available.String())
	case "ventana":
		return fmt.Sprintf("devolución fuera de la ventana de política: venta %s", e.SaleID)
	default:
		return fmt.Sprintf("venta %s no elegible para devolución", e.SaleID)
	}
}

func (e *ReturnNotEligibleError) Is(target error) bool { return target == ErrReturnNotEligible }

// StorageError envuelve una falla de infraestructura de persistencia.
// Se propaga sin recuperación local; el boundary transaccional hace rollback completo.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
