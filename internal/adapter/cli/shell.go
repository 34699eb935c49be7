package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/genesisr5/inventario/internal/core/domain"
	"github.com/genesisr5/inventario/internal/core/port"
)

const menuText = `
=== Inventario ===
1. Agregar producto
2. Eliminar producto
3. Actualizar producto
4. Listar productos
5. Salir
`

// Shell is the inbound adapter: a fixed numbered menu read from the
// operator, delegating to the inventory ports. It owns the reader,
// nothing else may consume it while Run is active.
type Shell struct {
	inventory port.Inventory
	in        *bufio.Reader
	out       io.Writer
}

func New(inventory port.Inventory, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		inventory: inventory,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Run drives the menu loop until the operator chooses exit, input is
// exhausted, or ctx is canceled.
func (s *Shell) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Shell.Run"
	log := slog.With("op", op)

	defer stopFn()
	for ctx.Err() == nil {
		s.printf("%s", menuText)
		choice, err := s.readLine("Seleccione una opción: ")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error("failed to read input", "err", err)
			}
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.addProduct(ctx)
		case "2":
			s.removeProduct(ctx)
		case "3":
			s.updateProduct(ctx)
		case "4":
			s.listProducts(ctx)
		case "5":
			s.printf("Hasta luego.\n")
			return
		default:
			s.printf("Opción no válida.\n")
		}
	}
}

func (s *Shell) addProduct(ctx context.Context) {
	const op = "Shell.addProduct"

	code, err := s.readLine("Código: ")
	if err != nil {
		return
	}
	code = strings.TrimSpace(code)
	if code == "" {
		s.printf("El código no puede estar vacío.\n")
		return
	}

	name, err := s.readLine("Nombre: ")
	if err != nil {
		return
	}

	quantity, ok := s.readInt("Cantidad: ")
	if !ok {
		return
	}
	price, ok := s.readFloat("Precio: ")
	if !ok {
		return
	}

	err = s.inventory.AddProduct(ctx, domain.Product{
		Code:     code,
		Name:     name,
		Quantity: quantity,
		Price:    price,
	})
	switch {
	case err == nil:
		s.printf("Producto %q agregado.\n", code)
	case errors.Is(err, domain.ErrAlreadyExists):
		s.printf("El producto %q ya existe.\n", code)
	default:
		s.reportFault(op, err)
	}
}

func (s *Shell) removeProduct(ctx context.Context) {
	const op = "Shell.removeProduct"

	code, err := s.readLine("Código: ")
	if err != nil {
		return
	}
	code = strings.TrimSpace(code)

	err = s.inventory.RemoveProduct(ctx, code)
	switch {
	case err == nil:
		s.printf("Producto %q eliminado.\n", code)
	case errors.Is(err, domain.ErrNotFound):
		s.printf("Producto %q no encontrado.\n", code)
	default:
		s.reportFault(op, err)
	}
}

func (s *Shell) updateProduct(ctx context.Context) {
	const op = "Shell.updateProduct"

	code, err := s.readLine("Código: ")
	if err != nil {
		return
	}
	code = strings.TrimSpace(code)

	var patch domain.ProductPatch

	name, err := s.readLine("Nuevo nombre (vacío = mantener): ")
	if err != nil {
		return
	}
	if name != "" {
		patch.Name = &name
	}

	quantityRaw, err := s.readLine("Nueva cantidad (vacío = mantener): ")
	if err != nil {
		return
	}
	if strings.TrimSpace(quantityRaw) != "" {
		quantity, err := strconv.Atoi(strings.TrimSpace(quantityRaw))
		if err != nil {
			s.printf("Cantidad no válida.\n")
			return
		}
		patch.Quantity = &quantity
	}

	priceRaw, err := s.readLine("Nuevo precio (vacío = mantener): ")
	if err != nil {
		return
	}
	if strings.TrimSpace(priceRaw) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(priceRaw), 64)
		if err != nil {
			s.printf("Precio no válido.\n")
			return
		}
		patch.Price = &price
	}

	p, err := s.inventory.UpdateProduct(ctx, code, patch)
	switch {
	case err == nil:
		s.printf("Producto actualizado: %s\n", formatProduct(p))
	case errors.Is(err, domain.ErrNotFound):
		s.printf("Producto %q no encontrado.\n", code)
	default:
		s.reportFault(op, err)
	}
}

func (s *Shell) listProducts(ctx context.Context) {
	const op = "Shell.listProducts"

	ps, err := s.inventory.ListProducts(ctx)
	if err != nil {
		s.reportFault(op, err)
		return
	}
	if len(ps) == 0 {
		s.printf("El inventario está vacío.\n")
		return
	}
	for _, p := range ps {
		s.printf("%s\n", formatProduct(p))
	}
}

func formatProduct(p domain.Product) string {
	return fmt.Sprintf(
		"%s | %s | cantidad: %d | precio: %.2f",
		p.Code, p.Name, p.Quantity, p.Price,
	)
}

func (s *Shell) readInt(prompt string) (int, bool) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.printf("Cantidad no válida.\n")
		return 0, false
	}
	return v, true
}

func (s *Shell) readFloat(prompt string) (float64, bool) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		s.printf("Precio no válido.\n")
		return 0, false
	}
	return v, true
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// reportFault surfaces a non-logical failure (typically resource
// access) without aborting the menu loop.
func (s *Shell) reportFault(op string, err error) {
	s.printf("No se pudo completar la operación: %v\n", err)
	slog.Error("operation failed", "op", op, "err", err)
}
