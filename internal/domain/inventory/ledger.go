package inventory

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// Key identifica un saldo: producto + tienda.
type Key struct {
	EAN     string
	StoreID int
}

// Balances recalcula los saldos a partir del ledger (suma con signo por par).
// Es la definición de referencia contra la que se contrasta la tabla de stock.
func Balances(movements []*entity.StockMovement) map[Key]int {
	out := make(map[Key]int)
	for _, m := range movements {
		out[Key{EAN: m.ProductEAN, StoreID: m.StoreID}] += m.QuantityChange
	}
	return out
}

// Movement devuelve la rotación que aporta un asiento: |quantity_change| para
// ventas y traslados, 0 para importaciones.
func Movement(m *entity.StockMovement) int {
	if !m.IsMovement() {
		return 0
	}
	if m.QuantityChange < 0 {
		return -m.QuantityChange
	}
	return m.QuantityChange
}

// Sufficient indica si hay saldo para retirar requested unidades.
func Sufficient(current, requested int) bool {
	return current >= requested
}
