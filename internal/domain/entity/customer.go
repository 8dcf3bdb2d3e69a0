package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer représente un client de la boutique (suivi du crédit).
// TotalDebt est le cumul des ventes à crédit impayées moins les versements.
type Customer struct {
	ID        string
	UserID    string
	Name      string
	Phone     string
	TotalDebt decimal.Decimal // créance en DA, jamais négative
	CreatedAt time.Time
	UpdatedAt time.Time
}
