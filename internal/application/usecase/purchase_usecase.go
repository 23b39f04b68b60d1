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

// PurchaseUseCase alta y consulta de compras. La compra nace PENDIENTE y sin
// efecto en kardex; el stock entra cuando el orquestador la recibe.
type PurchaseUseCase struct {
	repo          repository.PurchaseRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(repo repository.PurchaseRepository, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// Create crea una compra en PENDIENTE.
func (uc *PurchaseUseCase) Create(userID string, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if in.Folio == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		Folio:       in.Folio,
		WarehouseID: in.WarehouseID,
		SupplierID:  in.SupplierID,
		Status:      entity.DocPendiente,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		subtotal := item.Quantity.Mul(item.UnitCost)
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
			Subtotal:   subtotal,
		})
		total = total.Add(subtotal)
	}
	purchase.Total = total
	if err := uc.repo.Create(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetByID obtiene una compra con líneas.
func (uc *PurchaseUseCase) GetByID(id string) (*entity.Purchase, error) {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return purchase, nil
}
