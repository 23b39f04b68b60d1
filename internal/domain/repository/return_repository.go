package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// ReturnRepository puerto de persistencia de devoluciones sobre ventas.
type ReturnRepository interface {
	Create(ret *entity.SaleReturn) error
	GetByID(id string) (*entity.SaleReturn, error) // incluye líneas; nil si no existe
	// ListBySale devuelve todas las devoluciones de una venta (activas y anuladas);
	// el índice de referencias filtra por estado.
	ListBySale(saleID string) ([]*entity.SaleReturn, error)
	UpdateStatus(id, status string) error
}
