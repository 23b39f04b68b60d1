package operations

// CashSessionGuard verifica si un usuario tiene sesión de caja abierta.
// Vender y procesar devoluciones lo exigen antes de entrar a la transacción.
type CashSessionGuard interface {
	HasOpenSession(userID string) (bool, error)
}

// AuditSink destino fire-and-forget del registro de auditoría. Se invoca después
// del commit; una falla del sink jamás revierte la transacción de negocio
// (la implementación la registra en el log y sigue).
type AuditSink interface {
	Record(domain, action, entityType, entityID string, before, after any)
}
