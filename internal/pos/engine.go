package pos

import (
	"math"
	"sync"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/internal/cart"
	"github.com/aufaa4aaaaa/kasir-app/internal/catalog"
	"github.com/aufaa4aaaaa/kasir-app/internal/ledger"
	"github.com/shopspring/decimal"
)

const defaultLowStockThreshold = 5

// Options configures an Engine.
type Options struct {
	TaxRate           decimal.Decimal
	LowStockThreshold int
	Location          *time.Location
	// Seed is the catalog installed by Reset and by restoring an empty snapshot.
	Seed []catalog.Product
	Now  func() time.Time
}

// Engine owns the catalog, cart and ledger and applies every operation as a
// single atomic step under one mutex.
type Engine struct {
	mu sync.Mutex

	catalog *catalog.Store
	cart    *cart.Cart
	ledger  *ledger.Ledger

	taxRate  decimal.Decimal
	lowStock int
	loc      *time.Location
	seed     []catalog.Product
	now      func() time.Time
}

// NewEngine returns an engine holding the seed catalog, an empty cart and an empty ledger.
func NewEngine(opts Options) *Engine {
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = defaultLowStockThreshold
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == nil {
		opts.Seed = catalog.DefaultProducts()
	}
	seed := make([]catalog.Product, len(opts.Seed))
	copy(seed, opts.Seed)

	return &Engine{
		catalog:  catalog.NewStore(seed),
		cart:     cart.New(),
		ledger:   ledger.New(),
		taxRate:  opts.TaxRate,
		lowStock: opts.LowStockThreshold,
		loc:      opts.Location,
		seed:     seed,
		now:      opts.Now,
	}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) LowStockThreshold() int {
	return e.lowStock
}

func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// AddToCart adds one unit of the product to the cart.
func (e *Engine) AddToCart(productID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.Get(productID)
	if !ok || !p.Available() {
		return productUnavailable(productID)
	}
	next := e.cart.Quantity(productID) + 1
	if next > p.Stock {
		return insufficientStock(p, next)
	}
	e.cart.Set(productID, next)
	return nil
}

// SetQuantity sets the cart quantity for a product. A non-positive quantity removes the line.
func (e *Engine) SetQuantity(productID int64, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setQuantity(productID, quantity)
}

func (e *Engine) setQuantity(productID int64, quantity int) error {
	if quantity <= 0 {
		e.cart.Remove(productID)
		return nil
	}
	p, ok := e.catalog.Get(productID)
	if !ok {
		return productUnavailable(productID)
	}
	if quantity > p.Stock {
		return insufficientStock(p, quantity)
	}
	e.cart.Set(productID, quantity)
	return nil
}

// ChangeQuantity adjusts an existing cart line by delta. Absent lines are left alone.
func (e *Engine) ChangeQuantity(productID int64, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.cart.Has(productID) {
		return nil
	}
	current := e.cart.Quantity(productID)
	if delta > 0 {
		p, ok := e.catalog.Get(productID)
		if !ok {
			return productUnavailable(productID)
		}
		// current+delta can overflow int
		if current > p.Stock-delta {
			return insufficientStock(p, saturatingAdd(current, delta))
		}
	}
	return e.setQuantity(productID, current+delta)
}

func saturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// RemoveFromCart deletes the cart line if present.
func (e *Engine) RemoveFromCart(productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.Remove(productID)
}

func (e *Engine) ClearCart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.Clear()
}

// Checkout commits the cart as a transaction. Every line is validated before
// any stock moves, so a failure leaves catalog, cart and ledger untouched.
func (e *Engine) Checkout() (ledger.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cart.IsEmpty() {
		return ledger.Transaction{}, emptyCart()
	}

	lines := e.cart.Lines()
	products := make([]catalog.Product, len(lines))
	for i, line := range lines {
		p, ok := e.catalog.Get(line.ProductID)
		if !ok {
			return ledger.Transaction{}, productUnavailable(line.ProductID)
		}
		if p.Stock < line.Quantity {
			return ledger.Transaction{}, insufficientStock(p, line.Quantity)
		}
		products[i] = p
	}

	now := e.now().Truncate(time.Millisecond)
	tx := ledger.Transaction{
		ID:        e.ledger.NextID(now),
		Timestamp: now,
		Items:     make([]ledger.Line, len(lines)),
	}
	for i, line := range lines {
		p := products[i]
		lineTotal := p.Price * int64(line.Quantity)
		tx.Items[i] = ledger.Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		}
		tx.Subtotal += lineTotal
		tx.ItemCount += line.Quantity
	}
	tx.Tax = e.tax(tx.Subtotal)
	tx.Total = tx.Subtotal + tx.Tax

	if err := e.ledger.Append(tx); err != nil {
		return ledger.Transaction{}, err
	}
	for i, line := range lines {
		e.catalog.SetStock(products[i].ID, products[i].Stock-line.Quantity)
	}
	e.cart.Clear()
	return tx, nil
}

// tax rounds subtotal*rate half away from zero to whole minor units.
func (e *Engine) tax(subtotal int64) int64 {
	if e.taxRate.IsZero() {
		return 0
	}
	return decimal.NewFromInt(subtotal).Mul(e.taxRate).Round(0).IntPart()
}

// Cart returns the priced cart. Lines whose product vanished are skipped.
func (e *Engine) Cart() CartView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := CartView{Lines: []CartLineView{}}
	for _, line := range e.cart.Lines() {
		p, ok := e.catalog.Get(line.ProductID)
		if !ok {
			continue
		}
		lineTotal := p.Price * int64(line.Quantity)
		view.Lines = append(view.Lines, CartLineView{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			Stock:     p.Stock,
		})
		view.Subtotal += lineTotal
		view.ItemCount += line.Quantity
	}
	view.Tax = e.tax(view.Subtotal)
	view.Total = view.Subtotal + view.Tax
	return view
}

// Products returns the catalog in order with low-stock flags.
func (e *Engine) Products() []ProductView {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.productViews()
}

func (e *Engine) productViews() []ProductView {
	list := e.catalog.List()
	out := make([]ProductView, len(list))
	for i, p := range list {
		out[i] = ProductView{Product: p, LowStock: p.IsLowStock(e.lowStock)}
	}
	return out
}

// Product looks up a single catalog entry.
func (e *Engine) Product(id int64) (catalog.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.Get(id)
	if !ok {
		return catalog.Product{}, productUnavailable(id)
	}
	return p, nil
}

// AddProduct validates the input and appends a product with a new id.
func (e *Engine) AddProduct(in catalog.ProductInput) (catalog.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Create(in)
}

// EditProduct overwrites a product in place. Cart lines are re-checked at checkout.
func (e *Engine) EditProduct(id int64, in catalog.ProductInput) (catalog.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, found, err := e.catalog.Update(id, in)
	if !found {
		return catalog.Product{}, productUnavailable(id)
	}
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes the product and any cart line that references it.
func (e *Engine) DeleteProduct(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.catalog.Delete(id) {
		return productUnavailable(id)
	}
	e.cart.Remove(id)
	return nil
}

// DailySummary totals the transactions recorded on the local day of now.
func (e *Engine) DailySummary(now time.Time) ledger.DailySummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ledger.Summarize(e.ledger.OnDay(now, e.loc))
}

// Day returns the sales of the local day of now together with the current
// catalog, read under one lock.
func (e *Engine) Day(now time.Time) DayView {
	e.mu.Lock()
	defer e.mu.Unlock()

	txs := e.ledger.OnDay(now, e.loc)
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	return DayView{
		Date:         now.In(e.loc),
		Summary:      ledger.Summarize(txs),
		Transactions: txs,
		Products:     e.productViews(),
	}
}

// TodayTransactions returns the transactions of the local day of now, newest first.
func (e *Engine) TodayTransactions(now time.Time) []ledger.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ledger.NewestFirst(e.ledger.OnDay(now, e.loc))
}

// Transactions returns the whole ledger in append order.
func (e *Engine) Transactions() []ledger.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.All()
}

// Reset empties cart and ledger and reinstalls the seed catalog.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog.Replace(e.seed)
	e.cart.Clear()
	e.ledger.Clear()
}
