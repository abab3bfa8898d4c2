package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfquintero/mercado-api/internal/application/dto"
	"github.com/dfquintero/mercado-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        query           query  string  false  "Substring del nombre (case-insensitive)"
// @Param        sort_field      query  string  false  "name | price | available_stock | created_at"  default(name)
// @Param        sort_direction  query  string  false  "asc | desc"  default(asc)
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchProductsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query string inválido"})
	}
	out, err := h.uc.Search(in)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve el detalle de un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Seleccionar producto (claim de dueño único)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/select [post]
func (h *ProductHandler) Select(c *fiber.Ctx) error {
	if err := h.uc.Select(c.Params("id"), GetUserID(c)); err != nil {
		return renderError(c, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Product selected successfully"})
}

// Report agrega un reporte de texto libre sobre el producto.
//
// Report godoc
// @Summary      Reportar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ReportProductRequest  true  "reason"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/report [post]
func (h *ProductHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Report(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReports lista los reportes de un producto (solo staff).
func (h *ProductHandler) ListReports(c *fiber.Ctx) error {
	out, err := h.uc.ListReports(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF descarga el catálogo en PDF.
func (h *ProductHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportPDF()
	if err != nil {
		return renderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalogo.pdf"`)
	return c.Send(data)
}
