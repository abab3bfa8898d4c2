package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dfquintero/mercado-api/internal/domain/entity"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, available_stock, selected_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un nuevo producto. SelectedBy inicia en NULL.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, available_stock, selected_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price,
		product.AvailableStock, product.SelectedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.AvailableStock,
		&p.SelectedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List devuelve todos los productos en orden de inserción.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at`
	return r.scanMany(query)
}

// Search filtra por substring case-insensitive sobre name y ordena por
// sortField. El caso de uso ya validó sortField contra la allow-list, así que
// interpolarlo en el ORDER BY es seguro.
func (r *ProductRepo) Search(query, sortField string, desc bool) ([]*entity.Product, error) {
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE name ILIKE $1 ORDER BY %s %s`,
		productColumns, sortField, direction)
	return r.scanMany(sql, "%"+escapeLike(query)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapa los metacaracteres de LIKE para que el término del usuario
// se compare literal: buscar "100%" no debe comportarse como wildcard.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Select intenta el claim en un único UPDATE condicional: aplica solo si el
// producto está libre o ya pertenece al usuario. Bajo dos requests
// concurrentes sobre un producto libre exactamente uno gana; el otro observa
// 0 filas afectadas.
func (r *ProductRepo) Select(productID, userID string) (bool, error) {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE products SET selected_by = $2, updated_at = now()
		 WHERE id = $1 AND (selected_by IS NULL OR selected_by = $2)`,
		productID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("select product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ProductRepo) scanMany(sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.AvailableStock,
			&p.SelectedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
