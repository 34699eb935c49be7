package domain

import "errors"

// Logical outcomes, reported to the operator as plain notices.
var (
	ErrNotFound      = errors.New("product not found")
	ErrAlreadyExists = errors.New("product already exists")
)

type Product struct {
	Code     string
	Name     string
	Quantity int
	Price    float64
}

// ProductPatch describes a partial update. A nil field means
// "keep the current value", so an empty name or a zero quantity
// is distinguishable from "no change requested".
type ProductPatch struct {
	Name     *string
	Quantity *int
	Price    *float64
}
