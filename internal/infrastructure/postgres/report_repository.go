package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dfquintero/mercado-api/internal/domain/entity"
	"github.com/dfquintero/mercado-api/internal/domain/repository"
)

var _ repository.ProductReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación del puerto ProductReportRepository sobre PostgreSQL.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de persistencia para reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Create inserta un reporte. Los reportes nunca se actualizan ni se borran.
func (r *ReportRepo) Create(report *entity.ProductReport) error {
	query := `
		INSERT INTO product_reports (id, product_id, reported_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		report.ID, report.ProductID, report.ReportedBy, report.Reason, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product report: %w", err)
	}
	return nil
}

// ListByProduct lista los reportes de un producto, más recientes primero.
func (r *ReportRepo) ListByProduct(productID string) ([]*entity.ProductReport, error) {
	query := `
		SELECT id, product_id, reported_by, reason, created_at
		FROM product_reports WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductReport
	for rows.Next() {
		var rep entity.ProductReport
		if err := rows.Scan(&rep.ID, &rep.ProductID, &rep.ReportedBy, &rep.Reason, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
