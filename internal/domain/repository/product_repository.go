package repository

import "github.com/dfquintero/mercado-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	// Search filtra por substring case-insensitive sobre name y ordena por
	// sortField (ya validado contra la allow-list por el caso de uso).
	Search(query, sortField string, desc bool) ([]*entity.Product, error)
	// Select intenta el claim del producto en un solo statement condicional:
	// aplica solo si selected_by es NULL o ya es userID. Devuelve true si el
	// update afectó una fila. No distingue "no existe" de "seleccionado por
	// otro"; eso lo resuelve el caso de uso con un GetByID posterior.
	Select(productID, userID string) (bool, error)
}
