package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. SelectedBy implementa el claim
// de dueño único: nil = libre; una vez asignado solo el mismo usuario puede
// re-seleccionarlo (no-op).
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal // precio de venta, 2 decimales
	AvailableStock int
	SelectedBy     *string // user id, nil si nadie lo ha seleccionado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductReport es un reporte de texto libre sobre un producto. Append-only:
// nunca se actualiza ni se borra, y no muta el producto reportado.
type ProductReport struct {
	ID         string
	ProductID  string
	ReportedBy string
	Reason     string
	CreatedAt  time.Time
}
