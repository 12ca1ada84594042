package entity

import "time"

// Store representa una tienda de la cadena. Las tiendas se precargan (seed);
// el motor de inventario nunca las crea.
type Store struct {
	ID        int
	Name      string
	CreatedAt time.Time
}
