package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/genesisr5/inventario/internal/core/domain"
)

const (
	delimiter       = ";"
	fieldsPerRecord = 4
)

// ErrFormat marks one malformed record line.
var ErrFormat = errors.New("malformed record line")

// Serialize renders p as one backing-file line:
// code;name;quantity;price. Fields containing the delimiter are not
// escaped and will not survive a round trip.
func Serialize(p domain.Product) string {
	return strings.Join([]string{
		p.Code,
		p.Name,
		strconv.Itoa(p.Quantity),
		strconv.FormatFloat(p.Price, 'f', -1, 64),
	}, delimiter)
}

func Parse(line string) (domain.Product, error) {
	parts := strings.Split(line, delimiter)
	if len(parts) != fieldsPerRecord {
		return domain.Product{}, fmt.Errorf(
			"%w: want %d fields, got %d",
			ErrFormat, fieldsPerRecord, len(parts),
		)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Product{}, fmt.Errorf(
			"%w: quantity %q is not an integer", ErrFormat, parts[2],
		)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf(
			"%w: price %q is not a number", ErrFormat, parts[3],
		)
	}

	return domain.Product{
		Code:     parts[0],
		Name:     parts[1],
		Quantity: quantity,
		Price:    price,
	}, nil
}
