package port

import (
	"context"
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
)

// Inbound, used by http handlers.

type ProductRegistrar interface {
	RegisterProduct(context.Context, domain.Product) (domain.Product, error)
}

type InventoryManager interface {
	ListInventory(ctx context.Context, threshold *int) ([]domain.Product, error)
	UpdateStock(ctx context.Context, productID int64, stock int) (domain.Product, error)
}

type SalesReader interface {
	ListSales(context.Context, domain.SalesFilter) ([]domain.Sale, error)
}

type SalesRecorder interface {
	RecordSale(context.Context, domain.Sale) (domain.Sale, error)
}

type RevenueCalculator interface {
	Revenue(context.Context, domain.Timeframe) (domain.Revenue, error)
}

type DemoPopulator interface {
	PopulateDemo(context.Context) error
}

type HealthChecker interface {
	Healthy(context.Context) error
}

// Outbound, implemented by adapters.

type ProductsStorage interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	ListProducts(ctx context.Context, stockAtOrBelow *int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) (domain.Product, error)
	ClearProducts(context.Context) error
}

type SalesStorage interface {
	CreateSale(context.Context, domain.Sale) (domain.Sale, error)
	ListSales(context.Context, domain.SalesFilter) ([]domain.Sale, error)
	ListSaleLines(ctx context.Context, since time.Time) ([]domain.SaleLine, error)
	ClearSales(context.Context) error
}

type DemoStorage interface {
	StoreProductWithSales(context.Context, domain.Product, []domain.Sale) (domain.Product, error)
}

type Storage interface {
	ProductsStorage
	SalesStorage
	DemoStorage
	Ping(context.Context) error
}

type SaleEventsProducer interface {
	ProduceSaleRecorded(context.Context, domain.Sale, domain.Product) error
}
