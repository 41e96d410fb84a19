package catalog

// Store is the ordered, in-memory product list. It is not safe for
// concurrent use; the engine serializes access.
type Store struct {
	products []Product
}

// NewStore builds a store holding copies of the given products.
func NewStore(products []Product) *Store {
	s := &Store{}
	s.Replace(products)
	return s
}

func (s *Store) index(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the product with the given id.
func (s *Store) Get(id int64) (Product, bool) {
	if i := s.index(id); i >= 0 {
		return s.products[i], true
	}
	return Product{}, false
}

// List returns copies of all products in catalog order.
func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	return len(s.products)
}

// NextID returns max(id)+1, or 1 for an empty catalog.
func (s *Store) NextID() int64 {
	var highest int64
	for _, p := range s.products {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// Create validates the input and appends a product with a fresh id.
func (s *Store) Create(in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p := in.toProduct(s.NextID())
	s.products = append(s.products, p)
	return p, nil
}

// Update validates the input and overwrites the product fields in place.
// The boolean is false when the id is unknown.
func (s *Store) Update(id int64, in ProductInput) (Product, bool, error) {
	i := s.index(id)
	if i < 0 {
		return Product{}, false, nil
	}
	if err := in.Validate(); err != nil {
		return Product{}, true, err
	}
	s.products[i] = in.toProduct(id)
	return s.products[i], true, nil
}

// Delete removes the product. It reports whether the id existed.
func (s *Store) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true
}

// SetStock overwrites the stock level of an existing product.
func (s *Store) SetStock(id int64, stock int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.products[i].Stock = stock
	return true
}

// Replace swaps the whole catalog for copies of products.
func (s *Store) Replace(products []Product) {
	s.products = make([]Product, len(products))
	copy(s.products, products)
}

// LowStock returns the products whose stock is below threshold.
func (s *Store) LowStock(threshold int) []Product {
	var out []Product
	for _, p := range s.products {
		if p.IsLowStock(threshold) {
			out = append(out, p)
		}
	}
	return out
}
