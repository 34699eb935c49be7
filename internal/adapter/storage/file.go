package storage

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/genesisr5/inventario/internal/core/domain"
	"github.com/genesisr5/inventario/internal/core/port"
)

var _ port.ProductsRepository = (*FileRepository)(nil)

// FileRepository keeps the inventory in a flat text file, one record
// per line. The file is opened and closed inside each call.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) FileRepository {
	return FileRepository{path}
}

// LoadProducts reads the whole backing file in order. A missing file
// is created empty. Blank lines are ignored; malformed lines are
// logged and skipped, so one bad line does not abort the load.
// Duplicate codes are returned as-is, resolution is the caller's call.
func (r FileRepository) LoadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "FileRepository.LoadProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.OpenFile(r.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, r.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error("failed to close backing file", "err", err)
		}
	}()

	var ps []domain.Product
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := Parse(line)
		if err != nil {
			log.Warn("skipping malformed line", "line", lineNo, "err", err)
			continue
		}
		ps = append(ps, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to read %s: %w", op, r.path, err)
	}
	return ps, nil
}

// PersistProducts rewrites the backing file from scratch, one
// serialized line per record in the given order.
func (r FileRepository) PersistProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "FileRepository.PersistProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%s: failed to open %s: %w", op, r.path, err)
	}

	w := bufio.NewWriter(f)
	for _, p := range ps {
		if _, err := fmt.Fprintln(w, Serialize(p)); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: failed to write %s: %w", op, r.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: failed to write %s: %w", op, r.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: failed to close %s: %w", op, r.path, err)
	}
	return nil
}
