package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// PurchaseRepository puerto de persistencia de compras (cabecera + líneas).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error) // incluye líneas; nil si no existe
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Purchase, error)
}
