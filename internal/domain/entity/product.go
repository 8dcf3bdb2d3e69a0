package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStockAlertThreshold seuil d'alerte stock par défaut à la création d'un produit.
const DefaultStockAlertThreshold = 10

// Product représente un produit du catalogue d'une boutique.
// StockQuantity se décrémente via les ventes; PurchasePrice sert au calcul de marge.
type Product struct {
	ID                  string
	UserID              string // propriétaire (la boutique)
	Name                string
	Barcode             string // code-barres EAN, optionnel
	Category            string
	PurchasePrice       decimal.Decimal // prix d'achat unitaire
	SalePrice           decimal.Decimal // prix de vente unitaire
	StockQuantity       int
	StockAlertThreshold int        // seuil sous lequel une alerte stock est émise
	ExpiryDate          *time.Time // date de péremption, nil si non périssable
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
