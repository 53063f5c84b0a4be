package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/inventory/internal/core/domain"
	"gorm.io/gorm"
)

func (s Storage) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Storage.CreateProduct"

	m := toProductModel(p)
	m.ID = 0
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return m.toDomain(), nil
}

// ListProducts returns products ordered by id. A non-nil stockAtOrBelow
// keeps only products whose stock does not exceed it.
func (s Storage) ListProducts(
	ctx context.Context, stockAtOrBelow *int,
) ([]domain.Product, error) {
	const op = "Storage.ListProducts"

	q := s.db.WithContext(ctx).Model(&productModel{})
	if stockAtOrBelow != nil {
		q = q.Where("product_stock <= ?", *stockAtOrBelow)
	}

	var ms []productModel
	if err := q.Order("product_id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(ms))
	for i, m := range ms {
		ps[i] = m.toDomain()
	}
	return ps, nil
}

func (s Storage) GetProduct(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "Storage.GetProduct"

	m, err := firstProduct(s.db.WithContext(ctx), id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return m.toDomain(), nil
}

func (s Storage) UpdateStock(
	ctx context.Context, id int64, stock int,
) (domain.Product, error) {
	const op = "Storage.UpdateStock"

	var updated productModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := firstProduct(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&m).Update("product_stock", stock).Error; err != nil {
			return err
		}
		m.Stock = stock
		updated = m
		return nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated.toDomain(), nil
}

func (s Storage) ClearProducts(ctx context.Context) error {
	const op = "Storage.ClearProducts"

	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&productModel{}).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func firstProduct(db *gorm.DB, id int64) (productModel, error) {
	var m productModel
	err := db.First(&m, "product_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return productModel{}, domain.ErrProductNotFound
		}
		return productModel{}, err
	}
	return m, nil
}
