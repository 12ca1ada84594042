package dto

// MovementReportRequest parámetros de GET /api/inventory/analytics.
type MovementReportRequest struct {
	StoreID   int    `query:"store_id"`   // 0 = todas las tiendas
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusive
}

// MovementItemDTO rotación de un producto (ventas + traslados, en valor absoluto).
type MovementItemDTO struct {
	EAN       string `json:"ean"`
	StyleName string `json:"style_name"`
	Brand     string `json:"brand"`
	Movement  int    `json:"movement"`
}

// MovementReportDTO respuesta de analítica: top 5 de mayor rotación y top 5 de menor rotación.
// Con menos de 10 productos las listas pueden solaparse.
type MovementReportDTO struct {
	MostMoving  []MovementItemDTO `json:"most_moving"`
	LeastMoving []MovementItemDTO `json:"least_moving"`
}
