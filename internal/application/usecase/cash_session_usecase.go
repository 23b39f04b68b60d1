package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcastillo/comercial-api/internal/application/dto"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

// CashSessionUseCase apertura y cierre de sesiones de caja. También implementa
// operations.CashSessionGuard para el orquestador.
type CashSessionUseCase struct {
	repo repository.CashSessionRepository
}

// NewCashSessionUseCase construye el caso de uso.
func NewCashSessionUseCase(repo repository.CashSessionRepository) *CashSessionUseCase {
	return &CashSessionUseCase{repo: repo}
}

// Open abre una sesión de caja para el usuario. Con una sesión ya abierta retorna
// conflicto: un operador tiene a lo más una sesión abierta.
func (uc *CashSessionUseCase) Open(userID string, in dto.OpenCashSessionRequest) (*dto.CashSessionResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	open, err := uc.repo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrConflict
	}
	session := &entity.CashSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		Status:        entity.CashSessionOpen,
		OpeningAmount: in.OpeningAmount,
		OpenedAt:      time.Now(),
	}
	if err := uc.repo.Create(session); err != nil {
		return nil, err
	}
	return toCashSessionResponse(session), nil
}

// Close cierra la sesión abierta del usuario.
func (uc *CashSessionUseCase) Close(userID string, in dto.CloseCashSessionRequest) (*dto.CashSessionResponse, error) {
	session, err := uc.repo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenCashSession
	}
	now := time.Now()
	declared := in.DeclaredAmount
	session.Status = entity.CashSessionClosed
	session.DeclaredAmount = &declared
	session.ClosedAt = &now
	if err := uc.repo.Close(session); err != nil {
		return nil, err
	}
	return toCashSessionResponse(session), nil
}

// HasOpenSession implementa operations.CashSessionGuard.
func (uc *CashSessionUseCase) HasOpenSession(userID string) (bool, error) {
	session, err := uc.repo.GetOpenByUser(userID)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

func toCashSessionResponse(s *entity.CashSession) *dto.CashSessionResponse {
	return &dto.CashSessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Status:        s.Status,
		OpeningAmount: s.OpeningAmount,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
	}
}
