package tradesim

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"time"
)

// ValuationPoint is one timestamped total-holdings-value record of the
// portfolio's performance history.
type ValuationPoint struct {
	Time  time.Time `json:"time"`
	Value Money     `json:"value"`
}

// ProfitLoss is the point-in-time profit and loss of a portfolio against a
// price snapshot.
//
// CostBasis is cumulative and non-lot-based: every buy adds its total, every
// sell subtracts its total. Repeated round trips at different prices can
// drive it negative; PnLPercent is defined as 0 whenever CostBasis is not
// positive.
type ProfitLoss struct {
	CostBasis    Money
	CurrentValue Money
	PnL          Money
	PnLPercent   Percent
}

// Portfolio is the position set of one account. Holdings are derived entirely
// from replaying the owning account's transactions in order; the map never
// stores a zero or negative count.
type Portfolio struct {
	accountID    string
	holdings     map[string]int64
	transactions []Transaction
	history      []ValuationPoint
}

// NewPortfolio creates an empty portfolio for an account.
func NewPortfolio(accountID string) *Portfolio {
	return &Portfolio{
		accountID: accountID,
		holdings:  make(map[string]int64),
	}
}

// AccountID returns the owning account's id.
func (p *Portfolio) AccountID() string { return p.accountID }

// Quantity returns the share count held for a symbol, 0 if absent.
func (p *Portfolio) Quantity(symbol string) int64 {
	return p.holdings[strings.ToUpper(symbol)]
}

// Apply appends the transaction to the portfolio's log and replays it onto
// the holdings: buys add shares, sells remove them, and a count falling to
// zero or below removes the symbol entirely. The floor guards against drift;
// TradingSystem never executes a sell exceeding the current position.
func (p *Portfolio) Apply(tx Transaction) {
	p.transactions = append(p.transactions, tx)
	applyHolding(p.holdings, tx)
}

// applyHolding is the replay rule shared by Apply and Rebuilt.
func applyHolding(holdings map[string]int64, tx Transaction) {
	symbol := strings.ToUpper(tx.Symbol)
	switch tx.Side {
	case BuySide:
		holdings[symbol] += tx.Quantity
	case SellSide:
		rest := holdings[symbol] - tx.Quantity
		if rest <= 0 {
			delete(holdings, symbol)
		} else {
			holdings[symbol] = rest
		}
	}
}

// Rebuilt recomputes the holdings from scratch by replaying the full
// transaction log. The result must always equal the live holdings map.
func (p *Portfolio) Rebuilt() map[string]int64 {
	holdings := make(map[string]int64)
	for _, tx := range p.transactions {
		applyHolding(holdings, tx)
	}
	return holdings
}

// Holdings returns an iterator over (symbol, quantity) pairs ordered by
// symbol.
func (p *Portfolio) Holdings() iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(p.holdings)) {
			if !yield(symbol, p.holdings[symbol]) {
				return
			}
		}
	}
}

// Transactions returns an iterator over the portfolio's transactions in
// execution order.
func (p *Portfolio) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range p.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Valuation sums quantity × snapshot price over the holdings. A symbol
// missing from the snapshot contributes zero: a data-consistency gap is
// recoverable, not an error.
func (p *Portfolio) Valuation(snap PriceSnapshot) Money {
	total := M(0, USD)
	for symbol, quantity := range p.holdings {
		price, ok := snap[symbol]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(quantity))
	}
	return total
}

// ProfitLoss computes the portfolio's profit and loss against a price
// snapshot. An empty portfolio yields all-zero values, never a fault.
func (p *Portfolio) ProfitLoss(snap PriceSnapshot) ProfitLoss {
	costBasis := M(0, USD)
	for _, tx := range p.transactions {
		switch tx.Side {
		case BuySide:
			costBasis = costBasis.Add(tx.Total)
		case SellSide:
			costBasis = costBasis.Sub(tx.Total)
		}
	}
	currentValue := p.Valuation(snap)
	pnl := currentValue.Sub(costBasis)
	var pct Percent
	if costBasis.IsPositive() {
		pct = pnl.PercentOf(costBasis)
	}
	return ProfitLoss{
		CostBasis:    costBasis,
		CurrentValue: currentValue,
		PnL:          pnl,
		PnLPercent:   pct,
	}
}

// RecordValuation appends the current valuation to the performance history.
// It is caller-triggered, typically after a market price update.
func (p *Portfolio) RecordValuation(snap PriceSnapshot) {
	p.history = append(p.history, ValuationPoint{Time: time.Now(), Value: p.Valuation(snap)})
}

// History returns a copy of the valuation history in chronological order.
func (p *Portfolio) History() []ValuationPoint {
	return slices.Clone(p.history)
}
