package entity

import "time"

// Tipos de movimiento registrados en el ledger.
const (
	MovementTypeImport   = "Import"   // carga inicial de inventario
	MovementTypeTransfer = "Transfer" // traslado entre tiendas (dos asientos)
	MovementTypeSale     = "Sale"     // venta de cierre de día
)

// StockMovement es un asiento inmutable del ledger de inventario.
// Un traslado produce dos asientos: negativo en origen y positivo en destino.
type StockMovement struct {
	ID             int64
	BatchID        string // lote (carga CSV) que originó el asiento
	ProductEAN     string
	StoreID        int
	QuantityChange int // con signo: positivo entrada, negativo salida
	Type           string
	CreatedAt      time.Time
	CreatedBy      string // usuario autenticado que envió el lote
}

// IsMovement indica si el asiento cuenta como rotación para analítica (ventas y traslados).
func (m StockMovement) IsMovement() bool {
	return m.Type == MovementTypeSale || m.Type == MovementTypeTransfer
}
