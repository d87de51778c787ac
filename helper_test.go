package tradesim

import (
	"math/rand/v2"
	"testing"
)

// usd is a helper for tests to create dollar money from const.
func usd(v float64) Money { return M(v, USD) }

// testRand returns a deterministic random source for price walks.
func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// testMarket returns a market over the default catalog with a fixed seed.
func testMarket(t *testing.T) *Market {
	t.Helper()
	m, err := NewMarket(DefaultCatalog(), testRand(42))
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	return m
}

// testSystem returns a trading system with one registered account "alice"
// holding the reference 10000.00 starting balance.
func testSystem(t *testing.T) *TradingSystem {
	t.Helper()
	s := NewTradingSystem(testMarket(t))
	if _, err := s.Register("alice", "Alice", usd(10000)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return s
}
