package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captura las sentencias SQL emitidas, en orden.
type recordingQuerier struct {
	calls []string
}

func (q *recordingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, sql)
	return nil, nil
}

func (q *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, sql)
	return stubRow{}
}

type stubRow struct{}

func (stubRow) Scan(dest ...any) error { return nil }

// GetForUpdate debe materializar la fila de saldo (en cero) antes del SELECT FOR
// UPDATE: sobre cero filas el FOR UPDATE no bloquea nada, y dos primeros
// movimientos concurrentes de una clave nueva partirían ambos de cero.
func TestBalanceGetForUpdateSiembraFilaAntesDelLock(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewBalanceRepository(q)

	_, err := repo.GetForUpdate("bod-1", "prod-1")
	require.NoError(t, err)

	require.Len(t, q.calls, 2)
	assert.Contains(t, q.calls[0], "INSERT INTO balances")
	assert.Contains(t, q.calls[0], "ON CONFLICT (warehouse_id, product_id) DO NOTHING")
	assert.Contains(t, q.calls[1], "FOR UPDATE")
}

// La lectura sin lock no siembra filas ni bloquea.
func TestBalanceGetNoSiembraNiBloquea(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewBalanceRepository(q)

	_, err := repo.Get("bod-1", "prod-1")
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	assert.NotContains(t, q.calls[0], "INSERT")
	assert.NotContains(t, q.calls[0], "FOR UPDATE")
}
