package kardex

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAverageCost(t *testing.T) {
	tests := []struct {
		name        string
		qty, cost   string
		inQty, inC  string
		want        string
	}{
		{"saldo en cero toma el costo de entrada", "0", "0", "10", "5.00", "5.00"},
		{"mezcla ponderada", "10", "5.00", "10", "7.00", "6"},
		{"entrada pequeña mueve poco el promedio", "100", "10", "1", "20", "10.099009900990099"},
		{"saldo negativo no envenena el promedio", "-3", "4.00", "10", "6.00", "6.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageCost(dec(tt.qty), dec(tt.cost), dec(tt.inQty), dec(tt.inC))
			assert.True(t, got.Equal(dec(tt.want)), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

// Escenario concreto de costo promedio: 10@5.00 → 10@7.00 → salida de 5.
func TestProjectorAverageCostScenario(t *testing.T) {
	b := entity.NewBalance("w1", "p1")

	b, err := ApplyInbound(b, dec("10"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(dec("10")))
	assert.True(t, b.AverageCost.Equal(dec("5.00")))

	b, err = ApplyInbound(b, dec("10"), dec("7.00"))
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(dec("20")))
	assert.True(t, b.AverageCost.Equal(dec("6")))

	b, consumed, err := ApplyOutbound(b, dec("5"), true)
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(dec("15")))
	assert.True(t, b.AverageCost.Equal(dec("6")), "la salida no cambia el promedio")
	assert.True(t, consumed.Equal(dec("6")), "costo consumido registrado en el movimiento")
}

func TestApplyOutboundInsufficientStock(t *testing.T) {
	b := entity.NewBalance("w1", "p1")
	b.Quantity = dec("3")
	b.AverageCost = dec("6")

	next, _, err := ApplyOutbound(b, dec("5"), true)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, next)
	assert.True(t, b.Quantity.Equal(dec("3")), "el saldo recibido no se muta")

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Requested.Equal(dec("5")))
	assert.True(t, insufficientErr.Available.Equal(dec("3")))
}

// Un producto sin control de stock (servicio) puede quedar con saldo negativo.
func TestApplyOutboundServiceAllowsNegative(t *testing.T) {
	b := entity.NewBalance("w1", "svc1")
	next, consumed, err := ApplyOutbound(b, dec("2"), false)
	require.NoError(t, err)
	assert.True(t, next.Quantity.Equal(dec("-2")))
	assert.True(t, consumed.Equal(decimal.Zero))
}

func TestApplyRejectsNonPositiveQuantity(t *testing.T) {
	b := entity.NewBalance("w1", "p1")
	_, err := ApplyInbound(b, decimal.Zero, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, _, err = ApplyOutbound(b, dec("-1"), true)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Propiedad central del proyector: para cualquier secuencia válida de movimientos,
// Rebuild produce exactamente el mismo saldo y costo promedio que la aplicación
// incremental movimiento a movimiento.
func TestRebuildReplayEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for seq := 0; seq < 200; seq++ {
		incremental := entity.NewBalance("w1", "p1")
		var movements []*entity.Movement
		nextID := int64(1)

		steps := 1 + rng.Intn(30)
		for i := 0; i < steps; i++ {
			qty := decimal.NewFromInt(int64(1 + rng.Intn(50)))
			if rng.Intn(2) == 0 || !incremental.Quantity.GreaterThanOrEqual(qty) {
				// Entrada con costo aleatorio de dos decimales
				cost := decimal.NewFromInt(int64(rng.Intn(10000))).Div(dec("100"))
				next, err := ApplyInbound(incremental, qty, cost)
				require.NoError(t, err)
				movements = append(movements, &entity.Movement{
					ID: nextID, WarehouseID: "w1", ProductID: "p1",
					Kind: entity.KindCompra, Quantity: qty, UnitCost: cost,
				})
				incremental = next
			} else {
				next, consumed, err := ApplyOutbound(incremental, qty, true)
				require.NoError(t, err)
				movements = append(movements, &entity.Movement{
					ID: nextID, WarehouseID: "w1", ProductID: "p1",
					Kind: entity.KindVenta, Quantity: qty.Neg(), UnitCost: consumed,
				})
				incremental = next
			}
			incremental.LastMovementID = nextID
			nextID++
		}

		rebuilt, err := Rebuild("w1", "p1", movements, true)
		require.NoError(t, err)
		assert.True(t, rebuilt.Quantity.Equal(incremental.Quantity),
			"secuencia %d: cantidad replay %s vs incremental %s", seq, rebuilt.Quantity, incremental.Quantity)
		assert.Equal(t, incremental.AverageCost.String(), rebuilt.AverageCost.String(),
			"secuencia %d: costo promedio divergente", seq)
		assert.Equal(t, incremental.LastMovementID, rebuilt.LastMovementID)
	}
}

func TestRebuildRejectsZeroQuantityMovement(t *testing.T) {
	movs := []*entity.Movement{{ID: 1, Quantity: decimal.Zero, Kind: entity.KindAjuste}}
	_, err := Rebuild("w1", "p1", movs, true)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestMovementKindDirection(t *testing.T) {
	inbound := []entity.MovementKind{
		entity.KindCompra, entity.KindDevolucionVenta, entity.KindTrasladoEntrada, entity.KindStockInicial,
	}
	for _, k := range inbound {
		d, err := k.Direction()
		require.NoError(t, err)
		assert.Equal(t, entity.DirectionInbound, d, string(k))
	}
	outbound := []entity.MovementKind{
		entity.KindVenta, entity.KindAnulacionCompra, entity.KindTrasladoSalida,
	}
	for _, k := range outbound {
		d, err := k.Direction()
		require.NoError(t, err)
		assert.Equal(t, entity.DirectionOutbound, d, string(k))
	}
	_, err := entity.MovementKind("OTRO").Direction()
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}
