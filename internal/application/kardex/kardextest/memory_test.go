package kardextest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// Un error del callback descarta el clon completo: ningún movimiento ni saldo
// queda visible en el estado del Store.
func TestRunnerDescartaEscriturasSiFnFalla(t *testing.T) {
	store := NewStore()
	fail := errors.New("falla simulada")

	err := store.Runner().Run(context.Background(), func(r kardex.TxRepos) error {
		require.NoError(t, r.Movements.Create(&entity.Movement{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.KindStockInicial, Quantity: decimal.NewFromInt(5),
			OccurredAt: time.Now(),
		}))
		require.NoError(t, r.Balances.Upsert(&entity.Balance{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Quantity: decimal.NewFromInt(5),
		}))
		return fail
	})
	require.ErrorIs(t, err, fail)

	assert.Empty(t, store.Movements())
	assert.True(t, store.Balance("bod-1", "prod-1").Quantity.IsZero())
}

// Los repos atados al Store leen el estado vigente: ven los commits de Runs
// posteriores a su construcción, igual que repos atados al pool.
func TestReposVenCommitsPosteriores(t *testing.T) {
	store := NewStore()
	repos := store.Repos() // construidos antes del commit

	err := store.Runner().Run(context.Background(), func(r kardex.TxRepos) error {
		return r.Movements.Create(&entity.Movement{
			WarehouseID: "bod-1", ProductID: "prod-1",
			Kind: entity.KindStockInicial, Quantity: decimal.NewFromInt(3),
			OccurredAt: time.Now(),
		})
	})
	require.NoError(t, err)

	mov, err := repos.Movements.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(3)))
}
