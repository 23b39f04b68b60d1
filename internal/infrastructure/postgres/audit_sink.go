package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastillo/comercial-api/internal/application/operations"
	"github.com/jmcastillo/comercial-api/pkg/logger"
)

var _ operations.AuditSink = (*AuditSink)(nil)

// AuditSink persiste eventos de auditoría en la tabla audit_log. Escribe con el
// pool, fuera de la transacción de negocio: una falla de auditoría se registra
// en el log y no afecta la operación ya confirmada.
type AuditSink struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewAuditSink construye el sink de auditoría.
func NewAuditSink(pool *pgxpool.Pool, log *logger.Logger) *AuditSink {
	return &AuditSink{pool: pool, log: log}
}

// Record inserta un evento de auditoría. Best-effort: nunca retorna error.
func (s *AuditSink) Record(domain, action, entityType, entityID string, before, after any) {
	beforeJSON := marshalOrNull(before)
	afterJSON := marshalOrNull(after)

	query := `
		INSERT INTO audit_log (id, domain, action, entity_type, entity_id, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := s.pool.Exec(context.Background(), query,
		uuid.New().String(), domain, action, entityType, entityID, beforeJSON, afterJSON,
	)
	if err != nil {
		s.log.Error().Err(err).
			Str("domain", domain).
			Str("action", action).
			Str("entity_id", entityID).
			Msg("no se pudo registrar evento de auditoría")
	}
}

func marshalOrNull(v any) []byte {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
