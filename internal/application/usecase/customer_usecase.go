package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// CustomerUseCase cas d'usage CRUD des clients et suivi du crédit.
// La créance augmente via les ventes à crédit (transaction de vente) et
// diminue via RecordPayment; elle ne se modifie jamais directement.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construit le cas d'usage.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crée un client avec une créance à zéro.
func (uc *CustomerUseCase) Create(userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Phone:     in.Phone,
		TotalDebt: decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID renvoie un client par ID, nil si absent ou appartenant à un autre compte.
func (uc *CustomerUseCase) GetByID(userID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.UserID != userID {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update met à jour nom/téléphone. Les champs nil restent inchangés.
func (uc *CustomerUseCase) Update(userID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.UserID != userID {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List liste les clients du propriétaire avec pagination.
func (uc *CustomerUseCase) List(userID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// RecordPayment enregistre un versement: décrémente la créance (plancher zéro).
func (uc *CustomerUseCase) RecordPayment(userID, id string, in dto.RecordPaymentRequest) (*dto.CustomerResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.UserID != userID {
		return nil, nil
	}
	if err := uc.repo.AdjustDebt(id, in.Amount.Neg()); err != nil {
		return nil, err
	}
	return uc.GetByID(userID, id)
}

// Delete supprime un client par ID. ErrNotFound si absent ou d'un autre compte.
func (uc *CustomerUseCase) Delete(userID, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil || customer.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		TotalDebt: c.TotalDebt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
