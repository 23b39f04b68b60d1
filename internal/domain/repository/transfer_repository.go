package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// TransferRepository puerto de persistencia de traslados entre bodegas.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error) // incluye líneas; nil si no existe
	UpdateStatus(id, status string) error
}
