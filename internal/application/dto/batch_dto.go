package dto

// Estados posibles de un lote procesado.
const (
	BatchStatusSuccess = "success" // todas las filas aceptadas
	BatchStatusPartial = "partial" // al menos una fila rechazada (aunque no se acepte ninguna)
)

// RowError error de validación o de aplicación de una fila del CSV.
// Row es el número de línea visible en la hoja de cálculo (la cabecera es la línea 1).
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchReport respuesta de POST /api/inventory/{import,transfer,sales}.
type BatchReport struct {
	BatchID      string     `json:"batch_id"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors"`
	Status       string     `json:"status"`
}
