package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const SaleRecordedSchemaTextV1 = `{
	"type": "record",
	"namespace": "inventory.sales",
	"name": "sale_recorded",
	"fields" : [
		{"name": "sale_id", "type": "long"},
		{"name": "product_id", "type": "long"},
		{"name": "product_name", "type": "string"},
		{"name": "product_category", "type": "string"},
		{"name": "quantity_sold", "type": "int"},
		{"name": "unit_price", "type": "double"},
		{"name": "date_of_sale", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// SaleRecordedV1 is published once a sale is stored.
type SaleRecordedV1 struct {
	SaleID          int64     `avro:"sale_id"`
	ProductID       int64     `avro:"product_id"`
	ProductName     string    `avro:"product_name"`
	ProductCategory string    `avro:"product_category"`
	QuantitySold    int       `avro:"quantity_sold"`
	UnitPrice       float64   `avro:"unit_price"`
	DateOfSale      time.Time `avro:"date_of_sale"`
}

// SaleRecordedV1Avro panics if the schema text is broken.
func SaleRecordedV1Avro() avro.Schema {
	return avro.MustParse(SaleRecordedSchemaTextV1)
}
