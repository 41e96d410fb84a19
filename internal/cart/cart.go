package cart

// Line is one product entry in the cart.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart maps product ids to quantities and remembers the order in which
// products were first added. It is not safe for concurrent use.
type Cart struct {
	quantities map[int64]int
	order      []int64
}

func New() *Cart {
	return &Cart{quantities: make(map[int64]int)}
}

// Quantity returns the quantity held for productID, or 0.
func (c *Cart) Quantity(productID int64) int {
	return c.quantities[productID]
}

// Has reports whether a line exists for productID.
func (c *Cart) Has(productID int64) bool {
	_, ok := c.quantities[productID]
	return ok
}

// Set stores qty for productID. A non-positive qty removes the line.
func (c *Cart) Set(productID int64, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	if _, ok := c.quantities[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] = qty
}

// Remove deletes the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(productID int64) {
	if _, ok := c.quantities[productID]; !ok {
		return
	}
	delete(c.quantities, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.quantities = make(map[int64]int)
	c.order = nil
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, Line{ProductID: id, Quantity: c.quantities[id]})
	}
	return lines
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// TotalItems sums the quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// Replace resets the cart to the given lines, skipping non-positive quantities.
func (c *Cart) Replace(lines []Line) {
	c.Clear()
	for _, line := range lines {
		c.Set(line.ProductID, line.Quantity)
	}
}
