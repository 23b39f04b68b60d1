package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

// Índice de referencias: resuelve "cuánto ya se devolvió" y "cuánto queda por devolver"
// agregando los movimientos DEVOLUCION_VENTA ligados a las devoluciones de una venta.
// Las devoluciones ANULADAS no cuentan: anular una devolución libera el cupo.
//
// Son funciones sobre TxRepos para que el caller decida el contexto transaccional:
// usado como tope de ProcessReturn se ejecuta dentro de la misma tx y bajo el mismo
// lock de saldo que los movimientos de la devolución, cerrando la carrera de dos
// devoluciones concurrentes que sumadas excedan lo vendido.

// QuantityReturnedFor suma las cantidades devueltas (como positivo) de un producto
// de una venta, sobre devoluciones no anuladas.
func QuantityReturnedFor(r TxRepos, saleID, productID string) (decimal.Decimal, error) {
	returns, err := r.Returns.ListBySale(saleID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, ret := range returns {
		if ret.Status == entity.DocAnulada {
			continue
		}
		movs, err := r.Movements.ListByReference(entity.RefDevolucion, ret.ID)
		if err != nil {
			return decimal.Zero, err
		}
		for _, m := range movs {
			if m.Kind != entity.KindDevolucionVenta || m.ProductID != productID {
				continue
			}
			total = total.Add(m.Quantity) // entradas: ya positivas
		}
	}
	return total, nil
}

// AvailableToReturn cantidad vendida menos cantidad ya devuelta (activa) para un
// producto de la venta. Falla con ErrInvalidInput si el producto no está en la venta.
func AvailableToReturn(r TxRepos, sale *entity.Sale, productID string) (decimal.Decimal, error) {
	var sold decimal.Decimal
	found := false
	for _, item := range sale.Items {
		if item.ProductID == productID {
			sold = sold.Add(item.Quantity)
			found = true
		}
	}
	if !found {
		return decimal.Zero, domain.ErrInvalidInput
	}
	returned, err := QuantityReturnedFor(r, sale.ID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return sold.Sub(returned), nil
}
