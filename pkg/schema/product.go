package schema

import "github.com/hamba/avro/v2"

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "inventario",
	"name": "product",
	"fields" : [
		{"name": "code", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "price", "type": "double"}
	]
}`

type ProductV1 struct {
	Code     string  `avro:"code"`
	Name     string  `avro:"name"`
	Quantity int     `avro:"quantity"`
	Price    float64 `avro:"price"`
}

// ProductV1Avro panics if the schema text is invalid.
func ProductV1Avro() avro.Schema {
	return avro.MustParse(ProductSchemaTextV1)
}
