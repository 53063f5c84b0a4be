package httphandler

import (
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
)

type (
	ProductCreate struct {
		Name     *string  `json:"product_name" validate:"required"`
		Category *string  `json:"product_category" validate:"required"`
		Price    *float64 `json:"product_price" validate:"required,gte=0"`
		Stock    *int     `json:"product_stock" validate:"required,gte=0"`
	}

	StockUpdate struct {
		Stock *int `json:"product_stock" validate:"required,gte=0"`
	}

	Product struct {
		ID       int64   `json:"product_id"`
		Name     string  `json:"product_name"`
		Category string  `json:"product_category"`
		Price    float64 `json:"product_price"`
		Stock    int     `json:"product_stock"`
	}
)

func (p ProductCreate) toDomain() domain.Product {
	return domain.Product{
		Name:     *p.Name,
		Category: *p.Category,
		Price:    *p.Price,
		Stock:    *p.Stock,
	}
}

func fromDomainProduct(p domain.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}

func fromDomainProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromDomainProduct(p)
	}
	return out
}

type (
	// SaleCreate is the body of a new sale, DateOfSale defaults to now.
	SaleCreate struct {
		ProductID  *int64  `json:"sold_product_id" validate:"required"`
		Quantity   *int    `json:"quantity_sold" validate:"required"`
		DateOfSale *string `json:"date_of_sale"`
	}

	Sale struct {
		ID         int64     `json:"sale_id"`
		ProductID  int64     `json:"sold_product_id"`
		Quantity   int       `json:"quantity_sold"`
		DateOfSale time.Time `json:"date_of_sale"`
	}
)

func fromDomainSale(v domain.Sale) Sale {
	return Sale{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Quantity:   v.Quantity,
		DateOfSale: v.SoldAt.UTC(),
	}
}

func fromDomainSales(vs []domain.Sale) []Sale {
	out := make([]Sale, len(vs))
	for i, v := range vs {
		out[i] = fromDomainSale(v)
	}
	return out
}

type Revenue struct {
	Timeframe string  `json:"timeframe"`
	Revenue   float64 `json:"revenue"`
}

type Message struct {
	Message string `json:"message"`
}

type Health struct {
	Status string `json:"status"`
}

type ErrorBody struct {
	Detail string            `json:"detail"`
	Errors domain.Violations `json:"errors,omitempty"`
}
