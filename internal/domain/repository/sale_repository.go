package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// SaleRepository puerto de persistencia de ventas (cabecera + líneas).
// Los cambios de estado pasan solo por el orquestador, dentro de su transacción.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error) // incluye líneas; nil si no existe
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
