package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de sesión de caja.
const (
	CashSessionOpen   = "ABIERTA"
	CashSessionClosed = "CERRADA"
)

// CashSession sesión de caja de un operador. Vender y procesar devoluciones exige
// una sesión abierta del usuario que ejecuta la operación.
type CashSession struct {
	ID             string
	UserID         string
	Status         string // ABIERTA | CERRADA
	OpeningAmount  decimal.Decimal
	DeclaredAmount *decimal.Decimal // declarado al cierre
	OpenedAt       time.Time
	ClosedAt       *time.Time
}
