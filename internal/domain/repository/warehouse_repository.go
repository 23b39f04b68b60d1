package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// WarehouseRepository puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}
