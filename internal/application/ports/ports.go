// Package ports define las interfaces que la capa de aplicación espera de la
// infraestructura (email, sesiones), para poder sustituirlas en tests.
package ports

import (
	"time"

	"github.com/dfquintero/mercado-api/internal/domain/entity"
)

// Mailer envía correos transaccionales.
type Mailer interface {
	// SendPasswordResetEmail envía el link de restablecimiento de password.
	SendPasswordResetEmail(to, resetURL string) error
}

// SessionStore guarda sesiones de servidor: session id -> user id con TTL.
type SessionStore interface {
	// Create genera un session id nuevo para el usuario.
	Create(userID string, ttl time.Duration) (string, error)
	// Get devuelve el user id de la sesión, o "" si no existe o expiró.
	Get(sessionID string) (string, error)
	// Delete elimina la sesión. Idempotente: borrar una sesión inexistente
	// no es error.
	Delete(sessionID string) error
}

// CatalogPDFGenerator genera la versión imprimible del catálogo.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(products []*entity.Product) ([]byte, error)
}
