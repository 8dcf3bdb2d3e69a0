package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// ProductUseCase cas d'usage CRUD du catalogue produits.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crée un produit. Seuil d'alerte absent → 10 par défaut.
func (uc *ProductUseCase) Create(userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, _ := uc.repo.GetByUserAndBarcode(userID, in.Barcode)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	threshold := entity.DefaultStockAlertThreshold
	if in.StockAlertThreshold != nil {
		if *in.StockAlertThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.StockAlertThreshold
	}
	expiry, err := parseExpiry(in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Name:                in.Name,
		Barcode:             in.Barcode,
		Category:            in.Category,
		PurchasePrice:       in.PurchasePrice,
		SalePrice:           in.SalePrice,
		StockQuantity:       in.StockQuantity,
		StockAlertThreshold: threshold,
		ExpiryDate:          expiry,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID renvoie un produit par ID, nil si absent ou appartenant à un autre compte.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update met à jour un produit. Les champs nil restent inchangés.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockQuantity = *in.StockQuantity
	}
	if in.StockAlertThreshold != nil {
		if *in.StockAlertThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockAlertThreshold = *in.StockAlertThreshold
	}
	if in.ClearExpiry {
		product.ExpiryDate = nil
	} else if in.ExpiryDate != "" {
		expiry, err := parseExpiry(in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.ExpiryDate = expiry
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List liste les produits du propriétaire avec pagination.
func (uc *ProductUseCase) List(userID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete supprime un produit par ID. ErrNotFound si absent ou d'un autre compte.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// parseExpiry lit une date YYYY-MM-DD; chaîne vide → nil (non périssable).
func parseExpiry(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Barcode:             p.Barcode,
		Category:            p.Category,
		PurchasePrice:       p.PurchasePrice,
		SalePrice:           p.SalePrice,
		StockQuantity:       p.StockQuantity,
		StockAlertThreshold: p.StockAlertThreshold,
		ExpiryDate:          p.ExpiryDate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
