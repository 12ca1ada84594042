package dto

import "time"

// LedgerQuery parámetros de GET /api/inventory/transactions.
type LedgerQuery struct {
	PageRequest
	EAN     string `query:"ean"`
	StoreID int    `query:"store_id"` // 0 = todas las tiendas
}

// MovementDTO asiento del ledger.
type MovementDTO struct {
	ID             int64     `json:"transaction_id"`
	BatchID        string    `json:"batch_id"`
	ProductEAN     string    `json:"product_ean"`
	StoreID        int       `json:"store_id"`
	QuantityChange int       `json:"quantity_change"`
	Type           string    `json:"transaction_type"`
	Timestamp      time.Time `json:"timestamp"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// LedgerPageDTO página de asientos, más recientes primero.
type LedgerPageDTO struct {
	Page         PageResponse  `json:"page"`
	Transactions []MovementDTO `json:"transactions"`
}
