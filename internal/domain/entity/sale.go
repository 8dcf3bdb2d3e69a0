package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modes de paiement d'une vente.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit" // augmente la créance du client
)

// Sale représente une vente (ticket de caisse).
// TotalAmount est la somme des sous-totaux des lignes.
type Sale struct {
	ID            string
	UserID        string
	CustomerID    *string // nil pour une vente anonyme au comptant
	TotalAmount   decimal.Decimal
	PaymentMethod string // cash | credit
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem représente une ligne de vente.
// ProductName est une copie figée au moment de la vente (pas une référence vivante):
// renommer ou supprimer le produit ne réécrit pas l'historique.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   *string // nil si le produit a été supprimé ou saisi à la volée
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
