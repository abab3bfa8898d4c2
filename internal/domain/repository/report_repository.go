package repository

import "github.com/dfquintero/mercado-api/internal/domain/entity"

// ProductReportRepository puerto de persistencia para reportes de producto.
// Solo inserta y lista: los reportes son append-only.
type ProductReportRepository interface {
	Create(report *entity.ProductReport) error
	ListByProduct(productID string) ([]*entity.ProductReport, error)
}
