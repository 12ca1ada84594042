package entity

import "time"

// Stock representa la cantidad actual de un producto en una tienda (proyección materializada del ledger).
// Quantity siempre es igual a la suma con signo de los movimientos del par (EAN, tienda).
type Stock struct {
	ProductEAN string
	StoreID    int
	Quantity   int
	UpdatedAt  time.Time
}
