package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest corps de POST /api/products.
// StockAlertThreshold nil → seuil par défaut (10). ExpiryDate au format YYYY-MM-DD.
type CreateProductRequest struct {
	Name                string          `json:"name"`
	Barcode             string          `json:"barcode"`
	Category            string          `json:"category"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	SalePrice           decimal.Decimal `json:"sale_price"`
	StockQuantity       int             `json:"stock_quantity"`
	StockAlertThreshold *int            `json:"stock_alert_threshold"`
	ExpiryDate          string          `json:"expiry_date"`
}

// UpdateProductRequest corps de PUT /api/products/:id. Champs nil = inchangés.
// ExpiryDate "" = inchangée, "null" n'existe pas: utiliser ClearExpiry pour l'effacer.
type UpdateProductRequest struct {
	Name                *string          `json:"name"`
	Barcode             *string          `json:"barcode"`
	Category            *string          `json:"category"`
	PurchasePrice       *decimal.Decimal `json:"purchase_price"`
	SalePrice           *decimal.Decimal `json:"sale_price"`
	StockQuantity       *int             `json:"stock_quantity"`
	StockAlertThreshold *int             `json:"stock_alert_threshold"`
	ExpiryDate          string           `json:"expiry_date"`
	ClearExpiry         bool             `json:"clear_expiry"`
}

// ProductResponse représentation d'un produit dans l'API.
type ProductResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Barcode             string          `json:"barcode,omitempty"`
	Category            string          `json:"category,omitempty"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	SalePrice           decimal.Decimal `json:"sale_price"`
	StockQuantity       int             `json:"stock_quantity"`
	StockAlertThreshold int             `json:"stock_alert_threshold"`
	ExpiryDate          *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductListResponse page de produits.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
