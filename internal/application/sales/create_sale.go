package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// CreateSaleUseCase enregistre une vente de façon atomique.
//
// Dans une même transaction: insertion de l'en-tête et des lignes, décrément
// du stock de chaque produit lié (ErrInsufficientStock fait tout annuler),
// et incrément de la créance du client pour un paiement à crédit.
type CreateSaleUseCase struct {
	tx           TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewCreateSaleUseCase construit le cas d'usage.
func NewCreateSaleUseCase(tx TxRunner, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{tx: tx, productRepo: productRepo, customerRepo: customerRepo}
}

// Create valide la requête, fige les noms de produits, calcule les sous-totaux
// et le total côté serveur, puis exécute la transaction.
func (uc *CreateSaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if method != entity.PaymentCash && method != entity.PaymentCredit {
		return nil, domain.ErrInvalidInput
	}
	if method == entity.PaymentCredit && in.CustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != userID {
			return nil, domain.ErrNotFound
		}
	}

	saleID := uuid.New().String()
	now := time.Now()
	total := decimal.Zero
	items := make([]entity.SaleItem, 0, len(in.Items))

	for _, it := range in.Items {
		if it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item := entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		if it.ProductID != "" {
			product, err := uc.productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil || product.UserID != userID {
				return nil, domain.ErrNotFound
			}
			// Copie figée du nom: l'historique survit au renommage du produit.
			productID := it.ProductID
			item.ProductID = &productID
			item.ProductName = product.Name
		} else {
			if it.Name == "" {
				return nil, domain.ErrInvalidInput
			}
			item.ProductName = it.Name
		}
		total = total.Add(item.Subtotal)
		items = append(items, item)
	}

	sale := &entity.Sale{
		ID:            saleID,
		UserID:        userID,
		TotalAmount:   total,
		PaymentMethod: method,
		CreatedAt:     now,
		Items:         items,
	}
	if in.CustomerID != "" {
		customerID := in.CustomerID
		sale.CustomerID = &customerID
	}

	err := uc.tx.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range sale.Items {
			if sale.Items[i].ProductID == nil {
				continue
			}
			if err := productRepo.AdjustStock(*sale.Items[i].ProductID, -sale.Items[i].Quantity); err != nil {
				return err
			}
		}
		if method == entity.PaymentCredit {
			if err := customerRepo.AdjustDebt(*sale.CustomerID, total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
