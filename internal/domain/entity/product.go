package entity

import "time"

// Product representa un artículo del catálogo identificado por su EAN.
// Se crea la primera vez que aparece en una importación aceptada y no se modifica después.
type Product struct {
	EAN             string
	StyleName       string
	Size            string
	Brand           string
	StyleDesignCode *string // opcional; vacío se guarda como NULL
	ModelNo         *string // opcional; vacío se guarda como NULL
	CreatedAt       time.Time
}
