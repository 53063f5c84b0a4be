package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/niksmo/inventory/internal/core/port"
)

var _ port.ProductRegistrar = (*Service)(nil)
var _ port.InventoryManager = (*Service)(nil)
var _ port.SalesReader = (*Service)(nil)
var _ port.SalesRecorder = (*Service)(nil)
var _ port.RevenueCalculator = (*Service)(nil)
var _ port.DemoPopulator = (*Service)(nil)
var _ port.HealthChecker = (*Service)(nil)

type Opt func(*Service)

// SaleEventsOpt enables publishing of recorded sales.
func SaleEventsOpt(p port.SaleEventsProducer) Opt {
	return func(s *Service) {
		s.saleEvents = p
	}
}

// ClockOpt replaces the wall clock used for revenue windows and demo data.
func ClockOpt(now func() time.Time) Opt {
	return func(s *Service) {
		s.now = now
	}
}

// RandOpt replaces the random source factory used by [Service.PopulateDemo].
func RandOpt(newRand func() *rand.Rand) Opt {
	return func(s *Service) {
		s.newRand = newRand
	}
}

type Service struct {
	storage    port.Storage
	saleEvents port.SaleEventsProducer
	now        func() time.Time
	newRand    func() *rand.Rand
}

func New(storage port.Storage, opts ...Opt) Service {
	s := Service{
		storage: storage,
		now:     time.Now,
		newRand: defaultRand,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (s Service) RegisterProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.RegisterProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.storage.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s Service) ListInventory(
	ctx context.Context, threshold *int,
) ([]domain.Product, error) {
	const op = "Service.ListInventory"

	ps, err := s.storage.ListProducts(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) UpdateStock(
	ctx context.Context, productID int64, stock int,
) (domain.Product, error) {
	const op = "Service.UpdateStock"

	p, err := s.storage.UpdateStock(ctx, productID, stock)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s Service) ListSales(
	ctx context.Context, f domain.SalesFilter,
) ([]domain.Sale, error) {
	const op = "Service.ListSales"

	vs, err := s.storage.ListSales(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

// RecordSale stores a sale for an existing product.
//
// The product stock is left untouched. When sale events are enabled the
// sale is published after it is stored, a publish failure is only logged.
func (s Service) RecordSale(
	ctx context.Context, v domain.Sale,
) (domain.Sale, error) {
	const op = "Service.RecordSale"
	log := slog.With("op", op)

	if v.Quantity <= 0 {
		return domain.Sale{}, fmt.Errorf("%s: %w", op, domain.NewValidationError(
			"invalid sale", domain.Violations{"quantity_sold": "gt=0"},
		))
	}
	if v.SoldAt.IsZero() {
		v.SoldAt = s.now()
	}

	p, err := s.storage.GetProduct(ctx, v.ProductID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.storage.CreateSale(ctx, v)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.saleEvents != nil {
		if err := s.saleEvents.ProduceSaleRecorded(ctx, stored, p); err != nil {
			log.Error("failed to publish sale event",
				"saleID", stored.ID, "err", err)
		}
	}
	return stored, nil
}

func (s Service) Revenue(
	ctx context.Context, tf domain.Timeframe,
) (domain.Revenue, error) {
	const op = "Service.Revenue"
	log := slog.With("op", op)

	since := tf.Since(s.now())
	lines, err := s.storage.ListSaleLines(ctx, since)
	if err != nil {
		return domain.Revenue{}, fmt.Errorf("%s: %w", op, err)
	}

	amount, err := domain.SumRevenue(lines)
	if err != nil {
		if errors.Is(err, domain.ErrDanglingSale) {
			log.Error("inconsistent sales data", "err", err)
		}
		return domain.Revenue{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Revenue{Timeframe: tf, Amount: amount}, nil
}

func (s Service) Healthy(ctx context.Context) error {
	const op = "Service.Healthy"
	if err := s.storage.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
