package entity

import "time"

// User representa una cuenta del sistema. El email es la identidad de login.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	TermsAccepted bool
	IsActive      bool
	IsStaff       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
