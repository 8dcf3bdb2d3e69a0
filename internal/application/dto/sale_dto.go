package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest ligne d'une vente à créer.
// ProductID vide = produit saisi à la volée (nom libre, pas de décrément de stock).
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"` // requis si ProductID vide
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest corps de POST /api/sales.
// Le total est calculé côté serveur (somme des sous-totaux); un mode credit
// exige un customer_id.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method"` // cash | credit
	Items         []SaleItemRequest `json:"items"`
}

// SaleItemResponse ligne de vente dans l'API.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse représentation d'une vente dans l'API.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse ventes d'une période.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
