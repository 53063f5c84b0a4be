package storage

import (
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
)

type productModel struct {
	ID       int64   `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name     string  `gorm:"column:product_name;not null"`
	Category string  `gorm:"column:product_category;not null;index"`
	Price    float64 `gorm:"column:product_price;type:numeric(12,2);not null"`
	Stock    int     `gorm:"column:product_stock;not null"`
}

func (productModel) TableName() string { return "products" }

func toProductModel(p domain.Product) productModel {
	return productModel{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}

func (m productModel) toDomain() domain.Product {
	return domain.Product{
		ID:       m.ID,
		Name:     m.Name,
		Category: m.Category,
		Price:    m.Price,
		Stock:    m.Stock,
	}
}

type saleModel struct {
	ID        int64     `gorm:"column:sale_id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:sold_product_id;not null;index"`
	Quantity  int       `gorm:"column:quantity_sold;not null"`
	SoldAt    time.Time `gorm:"column:date_of_sale;not null;index"`
}

func (saleModel) TableName() string { return "sales" }

func toSaleModel(v domain.Sale) saleModel {
	return saleModel{
		ID:        v.ID,
		ProductID: v.ProductID,
		Quantity:  v.Quantity,
		SoldAt:    v.SoldAt.UTC(),
	}
}

func (m saleModel) toDomain() domain.Sale {
	return domain.Sale{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		SoldAt:    m.SoldAt.UTC(),
	}
}

// saleLineRow is a sale LEFT JOINed to its product, ProductPrice is nil
// when the product is gone.
type saleLineRow struct {
	SaleID        int64
	SoldProductID int64
	QuantitySold  int
	ProductPrice  *float64
}

func (r saleLineRow) toDomain() domain.SaleLine {
	l := domain.SaleLine{
		SaleID:    r.SaleID,
		ProductID: r.SoldProductID,
		Quantity:  r.QuantitySold,
	}
	if r.ProductPrice != nil {
		l.UnitPrice = *r.ProductPrice
		l.ProductFound = true
	}
	return l
}
