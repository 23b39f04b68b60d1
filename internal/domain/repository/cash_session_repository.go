package repository

import "github.com/jmcastillo/comercial-api/internal/domain/entity"

// CashSessionRepository puerto de persistencia de sesiones de caja.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	// GetOpenByUser devuelve la sesión ABIERTA del usuario, o nil si no tiene.
	GetOpenByUser(userID string) (*entity.CashSession, error)
	Close(session *entity.CashSession) error
}
