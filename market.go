package tradesim

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
)

// minPrice is the floor applied to every price update, in major units.
// Prices can never walk to zero or below.
const minPrice = 0.01

// PricePoint is one entry of an instrument's chronological price history.
type PricePoint struct {
	Time  time.Time
	Price Money
}

// instrument holds one tradable symbol. It is mutated only by price updates
// and its history only ever grows.
type instrument struct {
	symbol  string
	name    string
	price   Money
	history []PricePoint
}

// Quote is the read-only market view of one instrument.
type Quote struct {
	Symbol string
	Name   string
	Price  Money
	Change Percent // change from the first historical price
}

// PriceSnapshot is a point-in-time copy of current prices by symbol. It is
// the valuation input handed to Portfolio, so a valuation never reads live
// market state mid-computation.
type PriceSnapshot map[string]Money

// Market holds the instrument catalog with current prices and price
// histories. All methods are safe for concurrent use; history appends to a
// single instrument are serialized by the market lock.
type Market struct {
	mu          sync.RWMutex
	instruments map[string]*instrument
	rng         *rand.Rand
}

// NewMarket creates a market from catalog entries. Symbols are normalized to
// uppercase and must be unique; prices must be positive. rng drives the
// random-walk price updates and may be nil, in which case a time-seeded
// source is used.
func NewMarket(catalog []CatalogEntry, rng *rand.Rand) (*Market, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	m := &Market{
		instruments: make(map[string]*instrument, len(catalog)),
		rng:         rng,
	}
	now := time.Now()
	for _, e := range catalog {
		symbol := strings.ToUpper(strings.TrimSpace(e.Symbol))
		if symbol == "" {
			return nil, &ValidationError{Msg: "catalog entry with empty symbol"}
		}
		if _, exists := m.instruments[symbol]; exists {
			return nil, &ValidationError{Msg: fmt.Sprintf("duplicate catalog symbol %q", symbol)}
		}
		if e.Price <= 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("catalog price for %q must be positive, got %v", symbol, e.Price)}
		}
		price := M(e.Price, USD)
		m.instruments[symbol] = &instrument{
			symbol:  symbol,
			name:    e.Name,
			price:   price,
			history: []PricePoint{{Time: now, Price: price}},
		}
	}
	return m, nil
}

// Has reports whether the symbol is listed, case-insensitively.
func (m *Market) Has(symbol string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.instruments[strings.ToUpper(symbol)]
	return ok
}

// Price returns the current price for a symbol, case-insensitively.
func (m *Market) Price(symbol string) (Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ins, ok := m.instruments[strings.ToUpper(symbol)]
	if !ok {
		return Money{}, &NotFoundError{Kind: "instrument", ID: symbol}
	}
	return ins.price, nil
}

// History returns a copy of the chronological price history for a symbol.
func (m *Market) History(symbol string) ([]PricePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ins, ok := m.instruments[strings.ToUpper(symbol)]
	if !ok {
		return nil, &NotFoundError{Kind: "instrument", ID: symbol}
	}
	return slices.Clone(ins.history), nil
}

// SetPrice overrides the current price of a symbol and appends it to the
// history, exactly like a random-walk step would.
func (m *Market) SetPrice(symbol string, price Money) error {
	if !price.IsPositive() {
		return &ValidationError{Msg: fmt.Sprintf("price must be positive, got %s", price)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ins, ok := m.instruments[strings.ToUpper(symbol)]
	if !ok {
		return &NotFoundError{Kind: "instrument", ID: symbol}
	}
	ins.price = price
	ins.history = append(ins.history, PricePoint{Time: time.Now(), Price: price})
	return nil
}

// UpdateAll applies a bounded random perturbation in [-5%, +5%] to every
// instrument's price, floored at 0.01, and appends the new price to its
// history. Given the same random source the walk is deterministic.
func (m *Market) UpdateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	floor := M(minPrice, USD)
	now := time.Now()
	for _, symbol := range slices.Sorted(maps.Keys(m.instruments)) {
		ins := m.instruments[symbol]
		factor := 0.95 + m.rng.Float64()*0.10
		price := ins.price.MulFloat(factor)
		if price.LessThan(floor) {
			price = floor
		}
		ins.price = price
		ins.history = append(ins.history, PricePoint{Time: now, Price: price})
	}
}

// Quotes returns the current market view, ordered by symbol. The change is
// computed against the first historical price and is zero while the history
// has fewer than two points.
func (m *Market) Quotes() []Quote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quotes := make([]Quote, 0, len(m.instruments))
	for _, symbol := range slices.Sorted(maps.Keys(m.instruments)) {
		ins := m.instruments[symbol]
		var change Percent
		if len(ins.history) >= 2 {
			first := ins.history[0].Price
			change = ins.price.Sub(first).PercentOf(first)
		}
		quotes = append(quotes, Quote{
			Symbol: ins.symbol,
			Name:   ins.name,
			Price:  ins.price,
			Change: change,
		})
	}
	return quotes
}

// Snapshot returns a copy of the current prices by symbol.
func (m *Market) Snapshot() PriceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(PriceSnapshot, len(m.instruments))
	for symbol, ins := range m.instruments {
		snap[symbol] = ins.price
	}
	return snap
}
