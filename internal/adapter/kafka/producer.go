package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/niksmo/inventory/internal/core/port"
	"github.com/niksmo/inventory/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

var _ port.SaleEventsProducer = (*SaleEventsProducer)(nil)

// A SaleEventsProducer publishes [schema.SaleRecordedV1] records keyed by
// product id, so events of one product keep their order.
type SaleEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewSaleEventsProducer(
	opts ...ProducerOpt,
) (SaleEventsProducer, error) {
	const op = "NewSaleEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SaleEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "SaleEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return SaleEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p SaleEventsProducer) Close() {
	p.producer.close()
}

func (p SaleEventsProducer) ProduceSaleRecorded(
	ctx context.Context, v domain.Sale, product domain.Product,
) error {
	const op = "ProduceSaleRecorded"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v, product)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p SaleEventsProducer) createRecord(
	v domain.Sale, product domain.Product,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(v, product)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(strconv.FormatInt(s.ProductID, 10))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}

func (SaleEventsProducer) toSchema(
	v domain.Sale, product domain.Product,
) (s schema.SaleRecordedV1) {
	s.SaleID = v.ID
	s.ProductID = v.ProductID
	s.ProductName = product.Name
	s.ProductCategory = product.Category
	s.QuantitySold = v.Quantity
	s.UnitPrice = product.Price
	s.DateOfSale = v.SoldAt.UTC()
	return
}
