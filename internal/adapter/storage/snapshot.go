package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/genesisr5/inventario/internal/core/domain"
	"github.com/genesisr5/inventario/internal/core/port"
	"github.com/genesisr5/inventario/pkg/schema"
	"github.com/hamba/avro/v2/ocf"
)

var _ port.SnapshotWriter = (*SnapshotWriter)(nil)

// SnapshotWriter dumps the inventory as an Avro object-container
// file. The snapshot is a one-way backup next to the text file, it is
// never read back by the application itself.
type SnapshotWriter struct {
	path string
}

func NewSnapshotWriter(path string) SnapshotWriter {
	return SnapshotWriter{path}
}

func (w SnapshotWriter) WriteSnapshot(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "SnapshotWriter.WriteSnapshot"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("%s: failed to create %s: %w", op, w.path, err)
	}

	enc, err := ocf.NewEncoder(schema.ProductSchemaTextV1, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range ps {
		if err := enc.Encode(toSchema(p)); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: failed to encode %q: %w", op, p.Code, err)
		}
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: failed to write %s: %w", op, w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: failed to close %s: %w", op, w.path, err)
	}
	return nil
}

func toSchema(p domain.Product) schema.ProductV1 {
	return schema.ProductV1{
		Code:     p.Code,
		Name:     p.Name,
		Quantity: p.Quantity,
		Price:    p.Price,
	}
}
