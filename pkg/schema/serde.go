package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// registrySerde frames values in the schema registry wire format.
type registrySerde struct {
	srSerde *sr.Serde
}

func (s registrySerde) Encode(v any) ([]byte, error) {
	return s.srSerde.Encode(v)
}

func (s registrySerde) Decode(data []byte, v any) error {
	return s.srSerde.Decode(data, v)
}

// plainSerde writes bare avro without a schema id.
type plainSerde struct {
	avroSchema avro.Schema
}

func (s plainSerde) Encode(v any) ([]byte, error) {
	return avro.Marshal(s.avroSchema, v)
}

func (s plainSerde) Decode(data []byte, v any) error {
	return avro.Unmarshal(s.avroSchema, data, v)
}

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(sc SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if sc == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = sc
		return nil
	}
}

// NewSerdeSaleRecordedV1 registers the sale event schema and returns a
// registry framed serde. Both [SubjectOpt] and [SchemaIdentifierOpt] are
// required.
func NewSerdeSaleRecordedV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeSaleRecordedV1"
	return serdeConstructor(
		ctx,
		SaleRecordedSchemaTextV1,
		SaleRecordedV1{},
		op,
		opts...,
	)
}

// NewPlainSerdeSaleRecordedV1 is used when no schema registry is configured.
func NewPlainSerdeSaleRecordedV1() (Serde, error) {
	const op = "NewPlainSerdeSaleRecordedV1"
	avroSchema, err := avro.Parse(SaleRecordedSchemaTextV1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plainSerde{avroSchema}, nil
}

func allRequiredOpts(opts []Opt) bool {
	return len(opts) == 2
}

func serdeConstructor(
	ctx context.Context,
	schemaText string,
	example any,
	op string,
	opts ...Opt,
) (Serde, error) {
	if !allRequiredOpts(opts) {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	var serdeOpts serdeOpts
	for _, o := range opts {
		if err := o(&serdeOpts); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	avroSchema, err := avro.Parse(schemaText)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	srID, err := serdeOpts.si.DetermineID(
		ctx, serdeOpts.subject, schemaText,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	srSerde := new(sr.Serde)
	srSerde.Register(
		srID,
		example,
		sr.EncodeFn(AvroEncodeFn(avroSchema)),
		sr.DecodeFn(AvroDecodeFn(avroSchema)),
	)

	return registrySerde{srSerde}, nil
}
