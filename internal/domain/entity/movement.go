package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/domain"
)

// MovementKind tipo cerrado de movimiento de kardex. Cada tipo tiene dirección fija
// (entrada o salida); la dirección nunca la decide el caller.
type MovementKind string

const (
	KindCompra          MovementKind = "COMPRA"           // entrada por recepción de compra
	KindVenta           MovementKind = "VENTA"            // salida por venta
	KindDevolucionVenta MovementKind = "DEVOLUCION_VENTA" // entrada por devolución o anulación de venta
	KindAnulacionCompra MovementKind = "ANULACION_COMPRA" // salida que revierte una recepción de compra
	KindTrasladoSalida  MovementKind = "TRASLADO_SALIDA"  // salida en bodega origen de un traslado
	KindTrasladoEntrada MovementKind = "TRASLADO_ENTRADA" // entrada en bodega destino de un traslado
	KindAjuste          MovementKind = "AJUSTE"           // ajuste manual (entrada o salida según signo pedido)
	KindStockInicial    MovementKind = "STOCK_INICIAL"    // carga inicial de inventario
)

// MovementDirection dirección física de un movimiento.
type MovementDirection int

const (
	DirectionInbound  MovementDirection = 1
	DirectionOutbound MovementDirection = -1
)

// Direction devuelve la dirección del tipo. Switch exhaustivo: un tipo nuevo que no se
// agregue aquí falla en runtime con ErrUnknownKind en vez de corromper saldos.
func (k MovementKind) Direction() (MovementDirection, error) {
	switch k {
	case KindCompra, KindDevolucionVenta, KindTrasladoEntrada, KindStockInicial:
		return DirectionInbound, nil
	case KindVenta, KindAnulacionCompra, KindTrasladoSalida:
		return DirectionOutbound, nil
	case KindAjuste:
		// El ajuste declara su dirección en el input; aquí no tiene dirección fija.
		return 0, domain.ErrUnknownKind
	default:
		return 0, domain.ErrUnknownKind
	}
}

// Valid informa si el tipo pertenece al conjunto cerrado.
func (k MovementKind) Valid() bool {
	switch k {
	case KindCompra, KindVenta, KindDevolucionVenta, KindAnulacionCompra,
		KindTrasladoSalida, KindTrasladoEntrada, KindAjuste, KindStockInicial:
		return true
	}
	return false
}

// ReferenceType tipo de documento de negocio que originó un movimiento.
type ReferenceType string

const (
	RefVenta      ReferenceType = "VENTA"
	RefCompra     ReferenceType = "COMPRA"
	RefDevolucion ReferenceType = "DEVOLUCION"
	RefTraslado   ReferenceType = "TRASLADO"
	RefAjuste     ReferenceType = "AJUSTE"
)

// Movement es una entrada inmutable del kardex. Nunca se actualiza ni se borra:
// las correcciones se registran como movimientos nuevos con signo contrario.
// El ID (BIGSERIAL) define el orden cronológico autoritativo.
type Movement struct {
	ID            int64
	WarehouseID   string
	ProductID     string
	Kind          MovementKind
	Quantity      decimal.Decimal // positivo entrada, negativo salida; cero es inválido
	UnitCost      decimal.Decimal // en salidas: costo promedio al momento del movimiento
	TotalCost     decimal.Decimal // Quantity * UnitCost (con signo)
	ReferenceType ReferenceType
	ReferenceID   string
	Note          string
	OccurredAt    time.Time
	CreatedBy     string
}
