package repository

import (
	"time"

	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia del kardex. Append-only: no expone
// update ni delete; las correcciones entran como movimientos nuevos.
type MovementRepository interface {
	// Create inserta el movimiento y asigna movement.ID (secuencia de la DB,
	// orden cronológico autoritativo).
	Create(movement *entity.Movement) error
	GetByID(id int64) (*entity.Movement, error)
	// ListByKey devuelve los movimientos de una clave (bodega, producto) con
	// id > sinceID, en orden ascendente de id. Base del replay de saldos.
	ListByKey(warehouseID, productID string, sinceID int64) ([]*entity.Movement, error)
	// ListByReference devuelve los movimientos ligados a un documento de negocio,
	// en orden ascendente de id.
	ListByReference(refType entity.ReferenceType, refID string) ([]*entity.Movement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
