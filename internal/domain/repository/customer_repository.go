package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// CustomerRepository port de persistance des clients.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error

	// AdjustDebt ajoute delta à la créance (négatif pour un versement).
	// La créance ne descend jamais sous zéro.
	AdjustDebt(customerID string, delta decimal.Decimal) error

	// Snapshot renvoie tous les clients du propriétaire (moteur d'alertes).
	Snapshot(ctx context.Context, userID string) ([]entity.Customer, error)
}
