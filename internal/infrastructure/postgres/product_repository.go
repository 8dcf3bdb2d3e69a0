package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, barcode, category, purchase_price, sale_price, stock_quantity, stock_alert_threshold, expiry_date, created_at, updated_at`

// ProductRepo implémentation du port ProductRepository sur PostgreSQL (pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur de persistance des produits. Passer pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nouveau produit.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Name, product.Barcode, product.Category,
		product.PurchasePrice, product.SalePrice, product.StockQuantity,
		product.StockAlertThreshold, product.ExpiryDate, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID renvoie un produit par ID, nil si absent.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByUserAndBarcode renvoie un produit par propriétaire et code-barres.
func (r *ProductRepo) GetByUserAndBarcode(userID, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND barcode = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, barcode), "get product by barcode")
}

// Update met à jour un produit existant.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, category = $4, purchase_price = $5,
			sale_price = $6, stock_quantity = $7, stock_alert_threshold = $8,
			expiry_date = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Category, product.PurchasePrice,
		product.SalePrice, product.StockQuantity, product.StockAlertThreshold,
		product.ExpiryDate, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock ajoute delta au stock; la clause WHERE empêche tout stock négatif.
func (r *ProductRepo) AdjustStock(productID string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now()
		 WHERE id = $1 AND stock_quantity + $2 >= 0`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ListByUser liste les produits du propriétaire avec pagination.
func (r *ProductRepo) ListByUser(userID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Snapshot renvoie tous les produits du propriétaire (instantané du moteur d'alertes).
func (r *ProductRepo) Snapshot(ctx context.Context, userID string) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("snapshot products: %w", err)
	}
	defer rows.Close()
	var list []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// PurchasePrices renvoie le prix d'achat par ID produit (coût des rapports).
func (r *ProductRepo) PurchasePrices(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, purchase_price FROM products WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase prices: %w", err)
	}
	defer rows.Close()
	prices := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan purchase price: %w", err)
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

// Delete supprime un produit par ID. Les lignes de vente gardent leur copie du
// nom (product_id passe à NULL via la contrainte).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Barcode, &p.Category, &p.PurchasePrice,
		&p.SalePrice, &p.StockQuantity, &p.StockAlertThreshold, &p.ExpiryDate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProduct(rows pgx.Rows) (*entity.Product, error) {
	var p entity.Product
	err := rows.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Barcode, &p.Category, &p.PurchasePrice,
		&p.SalePrice, &p.StockQuantity, &p.StockAlertThreshold, &p.ExpiryDate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
