package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implémentation du port SaleRepository sur PostgreSQL (pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur de persistance des ventes. Passer pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create insère l'en-tête puis les lignes. S'utilise dans une transaction.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, user_id, customer_id, total_amount, payment_method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, sale.UserID, sale.CustomerID, sale.TotalAmount, sale.PaymentMethod, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range sale.Items {
		it := &sale.Items[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.SaleID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID renvoie une vente avec ses lignes, nil si absente.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, customer_id, total_amount, payment_method, created_at
		 FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.UserID, &s.CustomerID, &s.TotalAmount, &s.PaymentMethod, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsBySale(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// ListByUserAndRange renvoie les ventes du propriétaire sur [start, end],
// lignes incluses, triées par date croissante.
func (r *SaleRepo) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, customer_id, total_amount, payment_method, created_at
		 FROM sales WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		 ORDER BY created_at`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.CustomerID, &s.TotalAmount, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	items, err := r.itemsBySale(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
	}
	return sales, nil
}

// itemsBySale charge les lignes d'un lot de ventes en une seule requête.
func (r *SaleRepo) itemsBySale(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		 FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, id`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	return items, rows.Err()
}
