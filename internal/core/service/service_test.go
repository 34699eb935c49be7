package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/genesisr5/inventario/internal/adapter/storage"
	"github.com/genesisr5/inventario/internal/core/domain"
	"github.com/genesisr5/inventario/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockRepository) PersistProducts(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func newStore(t *testing.T) (*service.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventario.txt")
	s := service.New(storage.NewFileRepository(path))
	require.NoError(t, s.Load(context.Background()))
	return s, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLoad(t *testing.T) {
	t.Run("DuplicateCodesLastWriteWins", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadProducts", context.Background()).Return([]domain.Product{
			{Code: "1", Name: "Pan", Quantity: 20, Price: 0.5},
			{Code: "2", Name: "Leche", Quantity: 12, Price: 1.1},
			{Code: "1", Name: "Pan", Quantity: 25, Price: 0.55},
		}, nil)

		s := service.New(repo)
		require.NoError(t, s.Load(context.Background()))

		ps, err := s.ListProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, ps, 2)
		// later line wins, earlier position is kept
		assert.Equal(t, "1", ps[0].Code)
		assert.Equal(t, 25, ps[0].Quantity)
		assert.Equal(t, "2", ps[1].Code)
	})

	t.Run("FaultDegradesToEmpty", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadProducts", context.Background()).
			Return(nil, errors.New("permission denied"))

		s := service.New(repo)
		require.Error(t, s.Load(context.Background()))
		assert.Zero(t, s.Len())
	})
}

func TestAddProduct(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		s, path := newStore(t)

		p := domain.Product{Code: "6", Name: "Queso", Quantity: 4, Price: 3.9}
		require.NoError(t, s.AddProduct(context.Background(), p))

		assert.Equal(t, 1, s.Len())
		assert.Equal(t, "6;Queso;4;3.9\n", readFile(t, path))
	})

	t.Run("ExistingIsNoOp", func(t *testing.T) {
		s, path := newStore(t)

		p := domain.Product{Code: "6", Name: "Queso", Quantity: 4, Price: 3.9}
		require.NoError(t, s.AddProduct(context.Background(), p))
		before := readFile(t, path)

		p.Quantity = 99
		err := s.AddProduct(context.Background(), p)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)

		assert.Equal(t, 1, s.Len())
		assert.Equal(t, before, readFile(t, path))
	})

	t.Run("PersistFaultKeepsMemory", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadProducts", context.Background()).Return(nil, nil)
		repo.On("PersistProducts", context.Background(), mock.Anything).
			Return(errors.New("read-only file system"))

		s := service.New(repo)
		require.NoError(t, s.Load(context.Background()))

		p := domain.Product{Code: "6", Name: "Queso", Quantity: 4, Price: 3.9}
		err := s.AddProduct(context.Background(), p)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyExists)

		assert.Equal(t, 1, s.Len())
	})
}

func TestRemoveProduct(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		s, _ := newStore(t)

		err := s.RemoveProduct(context.Background(), "99")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("AddThenRemoveRestoresFile", func(t *testing.T) {
		s, path := newStore(t)
		require.NoError(t, s.SeedDefaults(context.Background()))
		before := readFile(t, path)

		p := domain.Product{Code: "6", Name: "Leche", Quantity: 10, Price: 1.1}
		require.NoError(t, s.AddProduct(context.Background(), p))
		require.NoError(t, s.RemoveProduct(context.Background(), "6"))

		assert.Equal(t, before, readFile(t, path))
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("PreservesOmittedFields", func(t *testing.T) {
		s, _ := newStore(t)

		p := domain.Product{Code: "6", Name: "Queso", Quantity: 4, Price: 3.9}
		require.NoError(t, s.AddProduct(context.Background(), p))

		price := 4.2
		got, err := s.UpdateProduct(
			context.Background(), "6", domain.ProductPatch{Price: &price},
		)
		require.NoError(t, err)

		want := p
		want.Price = price
		assert.Equal(t, want, got)
	})

	t.Run("AllFields", func(t *testing.T) {
		s, path := newStore(t)

		p := domain.Product{Code: "6", Name: "Queso", Quantity: 4, Price: 3.9}
		require.NoError(t, s.AddProduct(context.Background(), p))

		name := "Queso curado"
		quantity := 2
		price := 5.6
		got, err := s.UpdateProduct(context.Background(), "6", domain.ProductPatch{
			Name: &name, Quantity: &quantity, Price: &price,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Product{
			Code: "6", Name: name, Quantity: quantity, Price: price,
		}, got)
		assert.Equal(t, "6;Queso curado;2;5.6\n", readFile(t, path))
	})

	t.Run("NotFound", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.UpdateProduct(context.Background(), "99", domain.ProductPatch{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSeedDefaults(t *testing.T) {
	t.Run("EmptyStoreGetsFiveProducts", func(t *testing.T) {
		s, path := newStore(t)

		require.NoError(t, s.SeedDefaults(context.Background()))

		ps, err := s.ListProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, ps, 5)
		for i, p := range ps {
			assert.Equal(t, string(rune('1'+i)), p.Code)
		}

		want := "1;Pan;20;0.5\n" +
			"2;Leche;12;1.1\n" +
			"3;Huevos;30;2.2\n" +
			"4;Arroz;15;1.35\n" +
			"5;Aceite;8;4.75\n"
		assert.Equal(t, want, readFile(t, path))
	})

	t.Run("ExistingCodesAreSkipped", func(t *testing.T) {
		s, _ := newStore(t)

		p := domain.Product{Code: "2", Name: "Leche sin lactosa", Quantity: 6, Price: 1.4}
		require.NoError(t, s.AddProduct(context.Background(), p))

		require.NoError(t, s.SeedDefaults(context.Background()))

		assert.Equal(t, 5, s.Len())
		got, err := s.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Leche sin lactosa", got[0].Name)
	})
}

func TestReload(t *testing.T) {
	t.Run("SaveThenReloadIsIdempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inventario.txt")
		repo := storage.NewFileRepository(path)

		s := service.New(repo)
		require.NoError(t, s.Load(context.Background()))
		require.NoError(t, s.SeedDefaults(context.Background()))
		require.NoError(t, s.RemoveProduct(context.Background(), "3"))

		want, err := s.ListProducts(context.Background())
		require.NoError(t, err)

		reloaded := service.New(repo)
		require.NoError(t, reloaded.Load(context.Background()))

		got, err := reloaded.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
