package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
	"gorm.io/gorm"
)

const saleColumns = "sales.sale_id, sales.sold_product_id, " +
	"sales.quantity_sold, sales.date_of_sale"

// CreateSale stores the sale as is, the product reference is not checked.
func (s Storage) CreateSale(
	ctx context.Context, v domain.Sale,
) (domain.Sale, error) {
	const op = "Storage.CreateSale"

	m := toSaleModel(v)
	m.ID = 0
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Sale{}, fmt.Errorf("%s: %w", op, err)
	}
	return m.toDomain(), nil
}

// ListSales returns the sales matching every present filter field,
// ordered by id.
func (s Storage) ListSales(
	ctx context.Context, f domain.SalesFilter,
) ([]domain.Sale, error) {
	const op = "Storage.ListSales"

	q := s.db.WithContext(ctx).Model(&saleModel{}).Select(saleColumns)
	if f.Category != nil {
		q = q.Joins("JOIN products ON products.product_id = sales.sold_product_id").
			Where("products.product_category = ?", *f.Category)
	}
	if f.ProductID != nil {
		q = q.Where("sales.sold_product_id = ?", *f.ProductID)
	}
	if f.From != nil {
		q = q.Where("sales.date_of_sale >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("sales.date_of_sale <= ?", f.To.UTC())
	}

	var ms []saleModel
	if err := q.Order("sales.sale_id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vs := make([]domain.Sale, len(ms))
	for i, m := range ms {
		vs[i] = m.toDomain()
	}
	return vs, nil
}

// ListSaleLines returns sales made at or after since with the current
// price of their product.
func (s Storage) ListSaleLines(
	ctx context.Context, since time.Time,
) ([]domain.SaleLine, error) {
	const op = "Storage.ListSaleLines"

	var rows []saleLineRow
	err := s.db.WithContext(ctx).
		Table("sales").
		Select("sales.sale_id, sales.sold_product_id, sales.quantity_sold, " +
			"products.product_price AS product_price").
		Joins("LEFT JOIN products ON products.product_id = sales.sold_product_id").
		Where("sales.date_of_sale >= ?", since.UTC()).
		Order("sales.sale_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]domain.SaleLine, len(rows))
	for i, r := range rows {
		lines[i] = r.toDomain()
	}
	return lines, nil
}

func (s Storage) ClearSales(ctx context.Context) error {
	const op = "Storage.ClearSales"

	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&saleModel{}).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// StoreProductWithSales inserts the product and its sales in one
// transaction. Sales are bound to the new product id.
func (s Storage) StoreProductWithSales(
	ctx context.Context, p domain.Product, vs []domain.Sale,
) (domain.Product, error) {
	const op = "Storage.StoreProductWithSales"

	pm := toProductModel(p)
	pm.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		if len(vs) == 0 {
			return nil
		}

		sms := make([]saleModel, len(vs))
		for i, v := range vs {
			sms[i] = toSaleModel(v)
			sms[i].ID = 0
			sms[i].ProductID = pm.ID
		}
		return tx.Create(&sms).Error
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return pm.toDomain(), nil
}
