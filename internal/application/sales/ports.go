package sales

import (
	"context"

	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction regroupant les repos
// touchés par une vente: insertion vente + lignes, décrément du stock,
// incrément de la créance client. Tout échec annule l'ensemble.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
