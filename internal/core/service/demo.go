package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	demoProducts     = 10
	demoMinPrice     = 10.0
	demoMaxPrice     = 500.0
	demoMinStock     = 5
	demoMaxStock     = 100
	demoMinSales     = 5
	demoMaxSales     = 20
	demoMinQuantity  = 1
	demoMaxQuantity  = 5
	demoSalesHistory = 60 * 24 * time.Hour
)

var demoCategories = []string{"Electronics", "Books", "Clothing"}

// PopulateDemo replaces all products and sales with random demo data.
//
// Sales are cleared before products. Every product is stored together
// with its sales in one transaction, so a failure in the middle leaves the
// products stored so far intact.
func (s Service) PopulateDemo(ctx context.Context) error {
	const op = "Service.PopulateDemo"
	log := slog.With("op", op)

	if err := s.storage.ClearSales(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.storage.ClearProducts(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := s.newRand()
	now := s.now()
	var nSales int
	for i := range demoProducts {
		p, vs := demoProduct(r, now, i+1)
		if _, err := s.storage.StoreProductWithSales(ctx, p, vs); err != nil {
			return fmt.Errorf("%s: product %d: %w", op, i+1, err)
		}
		nSales += len(vs)
	}

	log.Info("demo data populated", "nProducts", demoProducts, "nSales", nSales)
	return nil
}

func demoProduct(
	r *rand.Rand, now time.Time, n int,
) (domain.Product, []domain.Sale) {
	p := domain.Product{
		Name:     fmt.Sprintf("Product %d", n),
		Category: demoCategories[r.IntN(len(demoCategories))],
		Price:    demoPrice(r),
		Stock:    intBetween(r, demoMinStock, demoMaxStock),
	}

	vs := make([]domain.Sale, intBetween(r, demoMinSales, demoMaxSales))
	for i := range vs {
		ago := time.Duration(r.Int64N(int64(demoSalesHistory) + 1))
		vs[i] = domain.Sale{
			Quantity: intBetween(r, demoMinQuantity, demoMaxQuantity),
			SoldAt:   now.Add(-ago),
		}
	}
	return p, vs
}

func demoPrice(r *rand.Rand) float64 {
	v := demoMinPrice + r.Float64()*(demoMaxPrice-demoMinPrice)
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// intBetween returns a uniform int in [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
