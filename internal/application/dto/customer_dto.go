package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest corps de POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest corps de PUT /api/customers/:id. Champs nil = inchangés.
// La créance ne se modifie pas ici: elle évolue via les ventes à crédit et les versements.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// RecordPaymentRequest corps de POST /api/customers/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"` // versement en DA, strictement positif
}

// CustomerResponse représentation d'un client dans l'API.
type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CustomerListResponse page de clients.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
