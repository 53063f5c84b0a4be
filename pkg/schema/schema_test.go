package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type fakeRegistry struct {
	id      int
	err     error
	subject string
	schema  sr.Schema
}

func (r *fakeRegistry) CreateSchema(
	_ context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	r.subject = subject
	r.schema = s
	if r.err != nil {
		return sr.SubjectSchema{}, r.err
	}
	return sr.SubjectSchema{Subject: subject, ID: r.id, Schema: s}, nil
}

func TestSchemaCreater(t *testing.T) {
	t.Run("ReturnsID", func(t *testing.T) {
		reg := &fakeRegistry{id: 42}
		c := SchemaCreater{reg}

		id, err := c.DetermineID(t.Context(), "sales-value", SaleRecordedSchemaTextV1)
		require.NoError(t, err)
		assert.Equal(t, 42, id)
		assert.Equal(t, "sales-value", reg.subject)
		assert.Equal(t, sr.TypeAvro, reg.schema.Type)
		assert.Equal(t, SaleRecordedSchemaTextV1, reg.schema.Schema)
	})

	t.Run("Error", func(t *testing.T) {
		c := SchemaCreater{&fakeRegistry{err: errors.New("503")}}
		_, err := c.DetermineID(t.Context(), "sales-value", SaleRecordedSchemaTextV1)
		assert.Error(t, err)
	})
}
