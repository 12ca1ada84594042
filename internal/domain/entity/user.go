package entity

import "time"

// User representa un usuario que puede autenticarse y cargar lotes.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
