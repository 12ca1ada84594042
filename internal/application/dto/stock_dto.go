package dto

// StockStatusDTO saldo de un producto en todas las tiendas.
// Stores usa el id de tienda como string porque es la clave de un objeto JSON.
type StockStatusDTO struct {
	EAN           string         `json:"ean"`
	StyleName     string         `json:"style_name"`
	Brand         string         `json:"brand"`
	Stores        map[string]int `json:"stores"`
	TotalQuantity int            `json:"total_quantity"`
}

// StoreDTO tienda del catálogo.
type StoreDTO struct {
	ID   int    `json:"store_id"`
	Name string `json:"store_name"`
}
