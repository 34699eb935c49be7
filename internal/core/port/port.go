package port

import (
	"context"

	"github.com/genesisr5/inventario/internal/core/domain"
)

type ProductAdder interface {
	AddProduct(context.Context, domain.Product) error
}

type ProductRemover interface {
	RemoveProduct(ctx context.Context, code string) error
}

type ProductUpdater interface {
	UpdateProduct(
		ctx context.Context, code string, patch domain.ProductPatch,
	) (domain.Product, error)
}

type ProductLister interface {
	ListProducts(context.Context) ([]domain.Product, error)
}

// Inventory is the full operation surface the shell drives.
type Inventory interface {
	ProductAdder
	ProductRemover
	ProductUpdater
	ProductLister
}

// ProductsRepository owns the backing resource. LoadProducts returns
// records in file order, duplicates included; PersistProducts rewrites
// the whole resource.
type ProductsRepository interface {
	LoadProducts(context.Context) ([]domain.Product, error)
	PersistProducts(context.Context, []domain.Product) error
}

type SnapshotWriter interface {
	WriteSnapshot(context.Context, []domain.Product) error
}
