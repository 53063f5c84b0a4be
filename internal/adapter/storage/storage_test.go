package storage_test

import (
	"testing"
	"time"

	"github.com/niksmo/inventory/internal/adapter/storage"
	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()
	s, err := storage.Open(t.Context(), storage.Config{
		Driver:          storage.DriverSQLite,
		DSN:             "file:" + t.Name() + "?mode=memory&cache=shared",
		AutoMigrate:     true,
		ConnectAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func ptr[T any](v T) *T { return &v }

func TestOpen(t *testing.T) {
	t.Run("UnsupportedDriver", func(t *testing.T) {
		_, err := storage.Open(t.Context(), storage.Config{Driver: "oracle"})
		assert.Error(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newTestStorage(t)
		assert.NoError(t, s.Ping(t.Context()))
	})
}

func TestProducts(t *testing.T) {
	s := newTestStorage(t)
	ctx := t.Context()

	lamp, err := s.CreateProduct(ctx, domain.Product{
		Name: "Lamp", Category: "Home", Price: 19.99, Stock: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, lamp.ID)

	book, err := s.CreateProduct(ctx, domain.Product{
		Name: "Book", Category: "Books", Price: 7, Stock: 0,
	})
	require.NoError(t, err)
	assert.Greater(t, book.ID, lamp.ID)

	t.Run("ListAll", func(t *testing.T) {
		ps, err := s.ListProducts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []domain.Product{lamp, book}, ps)
	})

	t.Run("Threshold", func(t *testing.T) {
		tests := []struct {
			threshold int
			want      []domain.Product
		}{
			{0, []domain.Product{book}},
			{2, []domain.Product{book}},
			{3, []domain.Product{lamp, book}},
			{1 << 30, []domain.Product{lamp, book}},
			{-1, []domain.Product{}},
		}
		for _, tt := range tests {
			ps, err := s.ListProducts(ctx, ptr(tt.threshold))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ps, "threshold=%d", tt.threshold)
		}
	})

	t.Run("Get", func(t *testing.T) {
		p, err := s.GetProduct(ctx, lamp.ID)
		require.NoError(t, err)
		assert.Equal(t, lamp, p)

		_, err = s.GetProduct(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("UpdateStock", func(t *testing.T) {
		p, err := s.UpdateStock(ctx, lamp.ID, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, p.Stock)
		assert.Equal(t, lamp.Name, p.Name)

		got, err := s.GetProduct(ctx, lamp.ID)
		require.NoError(t, err)
		assert.Equal(t, 42, got.Stock)

		_, err = s.UpdateStock(ctx, 9999, 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestSales(t *testing.T) {
	s := newTestStorage(t)
	ctx := t.Context()
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}

	phone, err := s.CreateProduct(ctx, domain.Product{
		Name: "Phone", Category: "Electronics", Price: 100, Stock: 5,
	})
	require.NoError(t, err)
	novel, err := s.CreateProduct(ctx, domain.Product{
		Name: "Novel", Category: "Books", Price: 10, Stock: 5,
	})
	require.NoError(t, err)

	mk := func(p domain.Product, q int, at time.Time) domain.Sale {
		v, err := s.CreateSale(ctx, domain.Sale{
			ProductID: p.ID, Quantity: q, SoldAt: at,
		})
		require.NoError(t, err)
		return v
	}
	s1 := mk(phone, 1, day(1))
	s2 := mk(novel, 2, day(2))
	s3 := mk(phone, 3, day(3))
	s4 := mk(novel, 4, day(4))

	t.Run("CreateAssignsID", func(t *testing.T) {
		assert.NotZero(t, s1.ID)
		assert.Equal(t, day(1), s1.SoldAt)
	})

	t.Run("StoresUTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		v := mk(novel, 1, time.Date(2026, 4, 1, 13, 0, 0, 0, loc))
		assert.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), v.SoldAt)

		vs, err := s.ListSales(ctx, domain.SalesFilter{From: ptr(day(20))})
		require.NoError(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, time.UTC, vs[0].SoldAt.Location())
		assert.True(t, v.SoldAt.Equal(vs[0].SoldAt))
	})

	tests := []struct {
		name   string
		filter domain.SalesFilter
		want   []domain.Sale
	}{
		{
			name:   "NoFilter",
			filter: domain.SalesFilter{To: ptr(day(10))},
			want:   []domain.Sale{s1, s2, s3, s4},
		},
		{
			name:   "InclusiveRange",
			filter: domain.SalesFilter{From: ptr(day(2)), To: ptr(day(3))},
			want:   []domain.Sale{s2, s3},
		},
		{
			name:   "Product",
			filter: domain.SalesFilter{ProductID: ptr(phone.ID), To: ptr(day(10))},
			want:   []domain.Sale{s1, s3},
		},
		{
			name: "CategoryAndRange",
			filter: domain.SalesFilter{
				Category: ptr("Books"), From: ptr(day(3)), To: ptr(day(10)),
			},
			want: []domain.Sale{s4},
		},
		{
			name:   "UnknownCategory",
			filter: domain.SalesFilter{Category: ptr("Toys")},
			want:   []domain.Sale{},
		},
		{
			name:   "ProductZero",
			filter: domain.SalesFilter{ProductID: ptr(int64(0))},
			want:   []domain.Sale{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListSales(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaleLines(t *testing.T) {
	s := newTestStorage(t)
	ctx := t.Context()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p, err := s.CreateProduct(ctx, domain.Product{
		Name: "Mug", Category: "Home", Price: 4.5, Stock: 1,
	})
	require.NoError(t, err)

	recent, err := s.CreateSale(ctx, domain.Sale{
		ProductID: p.ID, Quantity: 2, SoldAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = s.CreateSale(ctx, domain.Sale{
		ProductID: p.ID, Quantity: 9, SoldAt: now.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	dangling, err := s.CreateSale(ctx, domain.Sale{
		ProductID: 777, Quantity: 1, SoldAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	lines, err := s.ListSaleLines(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []domain.SaleLine{
		{SaleID: recent.ID, ProductID: p.ID, Quantity: 2, UnitPrice: 4.5, ProductFound: true},
		{SaleID: dangling.ID, ProductID: 777, Quantity: 1},
	}, lines)
}

func TestStoreProductWithSalesAndClear(t *testing.T) {
	s := newTestStorage(t)
	ctx := t.Context()
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	p, err := s.StoreProductWithSales(ctx,
		domain.Product{Name: "Product 1", Category: "Books", Price: 12.34, Stock: 9},
		[]domain.Sale{
			{ProductID: 555, Quantity: 1, SoldAt: at},
			{Quantity: 5, SoldAt: at.Add(time.Hour)},
		},
	)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	vs, err := s.ListSales(ctx, domain.SalesFilter{ProductID: ptr(p.ID)})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.Equal(t, p.ID, v.ProductID)
	}

	require.NoError(t, s.ClearSales(ctx))
	require.NoError(t, s.ClearProducts(ctx))

	ps, err := s.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ps)
	vs, err = s.ListSales(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	assert.Empty(t, vs)
}
