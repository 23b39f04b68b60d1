package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
	"github.com/jmcastillo/comercial-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de persistencia para sesiones de caja (usable con pool o tx).
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador de sesiones de caja. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

// Create persiste una sesión de caja nueva.
func (r *CashSessionRepo) Create(session *entity.CashSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_sessions (id, user_id, status, opening_amount, declared_amount, opened_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.UserID, session.Status, session.OpeningAmount,
		session.DeclaredAmount, session.OpenedAt, session.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("create cash session: %w", err)
	}
	return nil
}

// GetOpenByUser devuelve la sesión ABIERTA del usuario, o nil si no tiene.
func (r *CashSessionRepo) GetOpenByUser(userID string) (*entity.CashSession, error) {
	query := `
		SELECT id, user_id, status, opening_amount, declared_amount, opened_at, closed_at
		FROM cash_sessions
		WHERE user_id = $1 AND status = $2
		ORDER BY opened_at DESC LIMIT 1`
	var s entity.CashSession
	err := r.q.QueryRow(context.Background(), query, userID, entity.CashSessionOpen).Scan(
		&s.ID, &s.UserID, &s.Status, &s.OpeningAmount, &s.DeclaredAmount, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open cash session: %w", err)
	}
	return &s, nil
}

// Close marca la sesión como CERRADA con el monto declarado y la hora de cierre.
func (r *CashSessionRepo) Close(session *entity.CashSession) error {
	query := `
		UPDATE cash_sessions
		SET status = $2, declared_amount = $3, closed_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		session.ID, session.Status, session.DeclaredAmount, session.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
