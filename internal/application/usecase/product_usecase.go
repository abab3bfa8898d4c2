package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dfquintero/mercado-api/internal/application/dto"
	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/internal/domain"
	"github.com/dfquintero/mercado-api/internal/domain/entity"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
)

// Campos permitidos en sort_field de la búsqueda. Un campo fuera de esta
// lista se rechaza con error de validación en vez de pasar al ORDER BY.
var searchSortFields = map[string]bool{
	"name":            true,
	"price":           true,
	"available_stock": true,
	"created_at":      true,
}

// ProductUseCase casos de uso del catálogo: crear, listar, buscar,
// seleccionar (claim de dueño único) y reportar productos.
type ProductUseCase struct {
	products repository.ProductRepository
	reports  repository.ProductReportRepository
	pdf      ports.CatalogPDFGenerator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, reports repository.ProductReportRepository, pdf ports.CatalogPDFGenerator) *ProductUseCase {
	return &ProductUseCase{products: products, reports: reports, pdf: pdf}
}

// Create crea un producto con selected_by sin asignar.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "este campo no puede estar en blanco")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "el precio no puede ser negativo")
	} else if in.Price.Exponent() < -2 {
		verr.Add("price", "el precio admite máximo 2 decimales")
	}
	if in.AvailableStock < 0 {
		verr.Add("available_stock", "el stock no puede ser negativo")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price.Round(2),
		AvailableStock: in.AvailableStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// isID reporta si s es un UUID bien formado. Un id malformado nunca llega a
// la base: se trata igual que un id inexistente.
func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	if !isID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo en orden de inserción.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search filtra por substring case-insensitive sobre el nombre y ordena por
// sort_field. La dirección descendente debe pedirse explícita con "desc".
func (uc *ProductUseCase) Search(in dto.SearchProductsRequest) ([]dto.ProductResponse, error) {
	sortField := in.SortField
	if sortField == "" {
		sortField = "name"
	}
	if !searchSortFields[sortField] {
		return nil, domain.NewValidationError("sort_field", "campo de ordenamiento no permitido")
	}
	desc := in.SortDirection == "desc"
	list, err := uc.products.Search(in.Query, sortField, desc)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Select marca el producto como seleccionado por el usuario. El claim es de
// dueño único: si otro usuario ya lo seleccionó no hay mutación y se devuelve
// ErrAlreadySelected; re-seleccionar el propio producto es un no-op.
func (uc *ProductUseCase) Select(productID, userID string) error {
	if !isID(productID) {
		return domain.ErrNotFound
	}
	ok, err := uc.products.Select(productID, userID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	// El update condicional no aplicó: o el producto no existe, o lo tiene
	// otro usuario.
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadySelected
}

// Report agrega un reporte inmutable sobre el producto. No muta el producto:
// sin contador de reportes ni auto-flag.
func (uc *ProductUseCase) Report(productID, userID string, in dto.ReportProductRequest) (*dto.ReportResponse, error) {
	if in.Reason == "" {
		return nil, domain.NewValidationError("reason", "este campo no puede estar en blanco")
	}
	if !isID(productID) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	report := &entity.ProductReport{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		ReportedBy: userID,
		Reason:     in.Reason,
		CreatedAt:  time.Now(),
	}
	if err := uc.reports.Create(report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// ListReports lista los reportes de un producto (solo staff).
func (uc *ProductUseCase) ListReports(productID string) ([]dto.ReportResponse, error) {
	if !isID(productID) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.reports.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReportResponse(r))
	}
	return out, nil
}

// ExportPDF genera el catálogo completo en PDF.
func (uc *ProductUseCase) ExportPDF() ([]byte, error) {
	list, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateCatalogPDF(list)
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		AvailableStock: p.AvailableStock,
		SelectedBy:     p.SelectedBy,
		CreatedAt:      p.CreatedAt,
	}
}

func toReportResponse(r *entity.ProductReport) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		ReportedBy: r.ReportedBy,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}
