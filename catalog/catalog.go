package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProduct is returned when a product name is not in the
	// catalog. Lookup is by exact, case-sensitive name match.
	ErrUnknownProduct = errors.New("catalog: unknown product")

	// ErrDuplicateName is returned at load time when two rows share a
	// product name; names are the external product identity and must be
	// unique.
	ErrDuplicateName = errors.New("catalog: duplicate product name")
)

// ErrRowNotFound indicates a row id outside the catalog.
type ErrRowNotFound struct {
	Row int
}

func (e *ErrRowNotFound) Error() string {
	return fmt.Sprintf("catalog: row %d not found", e.Row)
}

// Product holds the per-product attributes of one catalog row.
// Immutable once indexed.
type Product struct {
	// Row is the dense 0-based row id, stable for the lifetime of an
	// index build and shared with the vector indices.
	Row int

	// Name is the unique display identifier and external product identity.
	Name string

	ImageRef     string
	Rating       float64
	ReviewTitles []string
	ReviewTexts  []string
	Description  string
	Features     string
}

// Store is the read-only product metadata store.
// It is immutable after construction and safe for concurrent reads.
type Store struct {
	products []Product
	rows     map[string]int
}

// NewStore builds a store from products in row order.
// Row ids are assigned by slice position; duplicate names fail.
func NewStore(products []Product) (*Store, error) {
	rows := make(map[string]int, len(products))
	owned := make([]Product, len(products))

	for i, p := range products {
		if _, ok := rows[p.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		p.Row = i
		rows[p.Name] = i
		owned[i] = p
	}

	return &Store{products: owned, rows: rows}, nil
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int { return len(s.products) }

// RowOf resolves a product name to its row id.
func (s *Store) RowOf(name string) (int, error) {
	row, ok := s.rows[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	return row, nil
}

// AttributesOf returns the product stored at the given row.
func (s *Store) AttributesOf(row int) (Product, error) {
	if row < 0 || row >= len(s.products) {
		return Product{}, &ErrRowNotFound{Row: row}
	}
	return s.products[row], nil
}

// ByName returns the product with the given name.
func (s *Store) ByName(name string) (Product, error) {
	row, err := s.RowOf(name)
	if err != nil {
		return Product{}, err
	}
	return s.products[row], nil
}

// Names returns all product names in row order.
func (s *Store) Names() []string {
	names := make([]string, len(s.products))
	for i, p := range s.products {
		names[i] = p.Name
	}
	return names
}
