package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/genesisr5/inventario/internal/core/domain"
	"github.com/genesisr5/inventario/internal/core/port"
)

var _ port.Inventory = (*Store)(nil)

// Store is the in-memory inventory mapping plus its persistence
// orchestration. Insertion order is preserved for display stability;
// every mutating operation rewrites the backing resource before it
// returns, so memory and file never drift for longer than one call.
type Store struct {
	repo  port.ProductsRepository
	items map[string]domain.Product
	order []string
}

func New(repo port.ProductsRepository) *Store {
	return &Store{
		repo:  repo,
		items: make(map[string]domain.Product),
	}
}

// Load rebuilds the mapping from the backing resource. Later duplicate
// codes overwrite earlier ones (last-write-wins) while keeping the
// earlier position. On failure the mapping is left empty.
func (s *Store) Load(ctx context.Context) error {
	const op = "Store.Load"

	s.items = make(map[string]domain.Product)
	s.order = s.order[:0]

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range ps {
		if _, ok := s.items[p.Code]; !ok {
			s.order = append(s.order, p.Code)
		}
		s.items[p.Code] = p
	}
	return nil
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) AddProduct(ctx context.Context, p domain.Product) error {
	const op = "Store.AddProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := s.items[p.Code]; ok {
		return fmt.Errorf("%s: %q: %w", op, p.Code, domain.ErrAlreadyExists)
	}

	s.items[p.Code] = p
	s.order = append(s.order, p.Code)

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) RemoveProduct(ctx context.Context, code string) error {
	const op = "Store.RemoveProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := s.items[code]; !ok {
		return fmt.Errorf("%s: %q: %w", op, code, domain.ErrNotFound)
	}

	delete(s.items, code)
	if i := slices.Index(s.order, code); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProduct overwrites only the fields the patch supplies; nil
// patch fields keep their prior values.
func (s *Store) UpdateProduct(
	ctx context.Context, code string, patch domain.ProductPatch,
) (domain.Product, error) {
	const op = "Store.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := s.items[code]
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %q: %w", op, code, domain.ErrNotFound,
		)
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	s.items[code] = p

	if err := s.persist(ctx); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Store.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.snapshot(), nil
}

var defaultProducts = []domain.Product{
	{Code: "1", Name: "Pan", Quantity: 20, Price: 0.5},
	{Code: "2", Name: "Leche", Quantity: 12, Price: 1.1},
	{Code: "3", Name: "Huevos", Quantity: 30, Price: 2.2},
	{Code: "4", Name: "Arroz", Quantity: 15, Price: 1.35},
	{Code: "5", Name: "Aceite", Quantity: 8, Price: 4.75},
}

// SeedDefaults inserts the fixed starter products through the normal
// add path, so seeding obeys the same duplicate and persist rules as
// manual entry.
func (s *Store) SeedDefaults(ctx context.Context) error {
	const op = "Store.SeedDefaults"

	for _, p := range defaultProducts {
		err := s.AddProduct(ctx, p)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	return s.repo.PersistProducts(ctx, s.snapshot())
}

func (s *Store) snapshot() []domain.Product {
	ps := make([]domain.Product, 0, len(s.order))
	for _, code := range s.order {
		ps = append(ps, s.items[code])
	}
	return ps
}
