package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AvailableStock int             `json:"available_stock"`
}

// SearchProductsRequest parámetros de búsqueda (query string).
type SearchProductsRequest struct {
	Query         string `query:"query"`
	SortField     string `query:"sort_field"`
	SortDirection string `query:"sort_direction"`
}

// ReportProductRequest entrada para reportar un producto.
type ReportProductRequest struct {
	Reason string `json:"reason"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AvailableStock int             `json:"available_stock"`
	SelectedBy     *string         `json:"selected_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReportResponse salida de un reporte de producto.
type ReportResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	ReportedBy string    `json:"reported_by"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
