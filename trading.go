package tradesim

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
)

// OrderResult is the outcome of a buy or sell order. Business-rule
// rejections (unknown symbol, non-positive quantity, insufficient funds or
// shares) come back as OK=false with a human-readable message; callers branch
// on OK, never on a caught fault.
type OrderResult struct {
	OK          bool
	Message     string
	Transaction *Transaction // set only on success
}

// TradingSystem orchestrates order execution: it validates an order against
// the market price and the account state, and on success mutates balance,
// holdings and both transaction logs as one atomic unit.
//
// A single mutex guards every account's {balance, holdings, logs} as one
// atomically-updated unit: an observer can never see debited cash without the
// matching holdings update.
type TradingSystem struct {
	mu         sync.Mutex
	market     *Market
	accounts   map[string]*Account
	portfolios map[string]*Portfolio
}

// NewTradingSystem creates a trading system over a market.
func NewTradingSystem(market *Market) *TradingSystem {
	return &TradingSystem{
		market:     market,
		accounts:   make(map[string]*Account),
		portfolios: make(map[string]*Portfolio),
	}
}

// Market returns the price source orders execute against.
func (s *TradingSystem) Market() *Market { return s.market }

// Register creates an account and its portfolio as a pair.
func (s *TradingSystem) Register(id, name string, initialBalance Money) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[id]; exists {
		return nil, &ValidationError{Msg: fmt.Sprintf("account %q already exists", id)}
	}
	account, err := NewAccount(id, name, initialBalance)
	if err != nil {
		return nil, err
	}
	s.accounts[id] = account
	s.portfolios[id] = NewPortfolio(id)
	return account, nil
}

// Account returns the account by id, or NotFoundError.
func (s *TradingSystem) Account(id string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, &NotFoundError{Kind: "account", ID: id}
	}
	return account, nil
}

// Portfolio returns the portfolio by account id, or NotFoundError.
func (s *TradingSystem) Portfolio(id string) (*Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	portfolio, ok := s.portfolios[id]
	if !ok {
		return nil, &NotFoundError{Kind: "portfolio", ID: id}
	}
	return portfolio, nil
}

// AccountIDs returns an iterator over registered account ids, sorted.
func (s *TradingSystem) AccountIDs() iter.Seq[string] {
	s.mu.Lock()
	ids := slices.Sorted(maps.Keys(s.accounts))
	s.mu.Unlock()
	return slices.Values(ids)
}

// Restore replaces the system's accounts and portfolios with state loaded by
// a persistence collaborator. An account without a stored portfolio gets an
// empty one, keeping the account/portfolio pairing structurally intact.
func (s *TradingSystem) Restore(accounts map[string]*Account, portfolios map[string]*Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*Account, len(accounts))
	s.portfolios = make(map[string]*Portfolio, len(portfolios))
	maps.Copy(s.accounts, accounts)
	for id, p := range portfolios {
		s.portfolios[id] = p
	}
	for id := range s.accounts {
		if _, ok := s.portfolios[id]; !ok {
			s.portfolios[id] = NewPortfolio(id)
		}
	}
}

// Snapshot exposes copies of the account and portfolio maps for a
// persistence collaborator to save.
func (s *TradingSystem) Snapshot() (map[string]*Account, map[string]*Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.accounts), maps.Clone(s.portfolios)
}

// RecordValuations appends a valuation point to every portfolio from one
// price snapshot. Typically called right after Market.UpdateAll.
func (s *TradingSystem) RecordValuations() {
	snap := s.market.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.portfolios {
		p.RecordValuation(snap)
	}
}

// Buy executes a buy order: resolve the account pair, snapshot the price,
// validate quantity and funds, then debit the account and record the
// transaction in both logs.
func (s *TradingSystem) Buy(accountID, symbol string, quantity int64) (OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, portfolio, err := s.pair(accountID)
	if err != nil {
		return OrderResult{}, err
	}

	price, err := s.market.Price(symbol)
	if err != nil {
		return failure("Stock %s not found in market", strings.ToUpper(symbol)), nil
	}
	if quantity <= 0 {
		return failure("Quantity must be positive"), nil
	}

	cost := price.Mul(quantity)
	if account.Balance().LessThan(cost) {
		return failure("Insufficient funds. Need %s, have %s", cost, account.Balance()), nil
	}

	tx := NewTransaction(BuySide, symbol, quantity, price, accountID)
	// The funds pre-check above makes this debit infallible; a failure here
	// is a broken invariant, not a business outcome.
	if err := account.Debit(cost); err != nil {
		return OrderResult{}, fmt.Errorf("executing buy of %d %s: %w", quantity, tx.Symbol, err)
	}
	account.Append(tx)
	portfolio.Apply(tx)

	return success(tx, "Successfully bought %d shares of %s @ %s", quantity, tx.Symbol, price), nil
}

// Sell executes a sell order: resolve the account pair, snapshot the price,
// validate quantity and position, then credit the account and record the
// transaction in both logs.
func (s *TradingSystem) Sell(accountID, symbol string, quantity int64) (OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, portfolio, err := s.pair(accountID)
	if err != nil {
		return OrderResult{}, err
	}

	price, err := s.market.Price(symbol)
	if err != nil {
		return failure("Stock %s not found in market", strings.ToUpper(symbol)), nil
	}
	if quantity <= 0 {
		return failure("Quantity must be positive"), nil
	}

	owned := portfolio.Quantity(symbol)
	if owned < quantity {
		return failure("Insufficient shares. Have %d, trying to sell %d", owned, quantity), nil
	}

	tx := NewTransaction(SellSide, symbol, quantity, price, accountID)
	if err := account.Credit(tx.Total); err != nil {
		return OrderResult{}, fmt.Errorf("executing sell of %d %s: %w", quantity, tx.Symbol, err)
	}
	account.Append(tx)
	portfolio.Apply(tx)

	return success(tx, "Successfully sold %d shares of %s @ %s", quantity, tx.Symbol, price), nil
}

// pair resolves the account and its portfolio. They are created together, so
// a missing half is an invariant breach, reported as a fault.
func (s *TradingSystem) pair(accountID string) (*Account, *Portfolio, error) {
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, nil, &NotFoundError{Kind: "account", ID: accountID}
	}
	portfolio, ok := s.portfolios[accountID]
	if !ok {
		return nil, nil, &NotFoundError{Kind: "portfolio", ID: accountID}
	}
	return account, portfolio, nil
}

func failure(format string, args ...any) OrderResult {
	return OrderResult{Message: fmt.Sprintf(format, args...)}
}

func success(tx Transaction, format string, args ...any) OrderResult {
	return OrderResult{OK: true, Message: fmt.Sprintf(format, args...), Transaction: &tx}
}
