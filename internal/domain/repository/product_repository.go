package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// ProductRepository port de persistance des produits.
// Les lectures d'instantané (Snapshot, PurchasePrices) servent au moteur
// d'alertes et aux rapports: lecture seule, toutes lignes du propriétaire.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByUserAndBarcode(userID, barcode string) (*entity.Product, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// AdjustStock ajoute delta (négatif pour une sortie) au stock du produit.
	// Retourne domain.ErrInsufficientStock si le stock résultant serait négatif.
	AdjustStock(productID string, delta int) error

	// Snapshot renvoie tous les produits du propriétaire (moteur d'alertes).
	Snapshot(ctx context.Context, userID string) ([]entity.Product, error)

	// PurchasePrices renvoie le prix d'achat par ID produit (calcul de coût des rapports).
	PurchasePrices(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
}
