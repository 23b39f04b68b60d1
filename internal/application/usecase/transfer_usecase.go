package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

// TransferUseCase alta y consulta de traslados. El traslado nace PENDIENTE;
// el stock se mueve cuando el orquestador lo aprueba.
type TransferUseCase struct {
	repo          repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(repo repository.TransferRepository, warehouseRepo repository.WarehouseRepository) *TransferUseCase {
	return &TransferUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea un traslado en PENDIENTE.
func (uc *TransferUseCase) Create(userID string, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.Folio == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	from, err := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	to, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	transfer := &entity.Transfer{
		ID:              uuid.New().String(),
		Folio:           in.Folio,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.DocPendiente,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		transfer.Items = append(transfer.Items, entity.TransferItem{
			ID:         uuid.New().String(),
			TransferID: transfer.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}
	if err := uc.repo.Create(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetByID obtiene un traslado con líneas.
func (uc *TransferUseCase) GetByID(id string) (*entity.Transfer, error) {
	transfer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}
