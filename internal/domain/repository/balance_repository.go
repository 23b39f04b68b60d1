package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// BalanceRepository puerto para la proyección de saldos por (bodega, producto).
// Usado dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// Get lectura sin bloqueo (consultas de solo lectura). Clave inexistente
	// devuelve saldo en cero, no error.
	Get(warehouseID, productID string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Serializa
	// todas las operaciones que tocan la misma clave de stock.
	GetForUpdate(warehouseID, productID string) (*entity.Balance, error)
	Upsert(balance *entity.Balance) error
}
