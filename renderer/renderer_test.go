package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/tradesim"
)

// contains asserts that every want string appears in got, in order of the
// slice but not necessarily adjacent.
func contains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestMarket(t *testing.T) {
	quotes := []tradesim.Quote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: tradesim.M(175.50, tradesim.USD), Change: 2.5},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Price: tradesim.M(378.85, tradesim.USD), Change: -1.25},
	}
	got := Market(quotes)

	contains(t, got,
		"# Market",
		"AAPL", "Apple Inc.", "$175.50", "+2.50%",
		"MSFT", "Microsoft Corp.", "$378.85", "-1.25%",
	)
}

func TestPortfolio(t *testing.T) {
	r := &tradesim.PortfolioReport{
		AccountID:        "alice",
		Name:             "Alice",
		Balance:          tradesim.M(8245.00, tradesim.USD),
		InitialBalance:   tradesim.M(10000, tradesim.USD),
		Holdings:         []tradesim.HoldingLine{{Symbol: "AAPL", Name: "Apple Inc.", Quantity: 10, Price: tradesim.M(180, tradesim.USD), Value: tradesim.M(1800, tradesim.USD)}},
		HoldingsValue:    tradesim.M(1800, tradesim.USD),
		ProfitLoss:       tradesim.ProfitLoss{CostBasis: tradesim.M(1755, tradesim.USD), CurrentValue: tradesim.M(1800, tradesim.USD), PnL: tradesim.M(45, tradesim.USD), PnLPercent: 2.5641},
		TotalValue:       tradesim.M(10045, tradesim.USD),
		OverallReturn:    tradesim.M(45, tradesim.USD),
		OverallReturnPct: 0.45,
	}
	got := Portfolio(r)

	contains(t, got,
		"# Portfolio of Alice",
		"**Cash Balance**", "**$8,245.00**",
		"alice", "$10,000.00",
		"## Holdings",
		"AAPL", "Apple Inc.", "10", "$180.00", "$1,800.00",
		"Holdings Value: $1,800.00",
		"## Performance",
		"**Total Value**", "**$10,045.00**",
		"$1,755.00", "+$45.00", "+2.56%", "+0.45%",
	)
}

func TestPortfolioNoHoldings(t *testing.T) {
	r := &tradesim.PortfolioReport{
		AccountID:      "bob",
		Name:           "Bob",
		Balance:        tradesim.M(10000, tradesim.USD),
		InitialBalance: tradesim.M(10000, tradesim.USD),
	}
	got := Portfolio(r)
	if strings.Contains(got, "## Holdings") {
		t.Errorf("Portfolio() should omit holdings section when empty:\n%s", got)
	}
	contains(t, got, "## Performance")
}

func TestTransactions(t *testing.T) {
	when := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	txs := []tradesim.Transaction{{
		Side:     tradesim.BuySide,
		Symbol:   "AAPL",
		Quantity: 10,
		Price:    tradesim.M(175.50, tradesim.USD),
		Total:    tradesim.M(1755, tradesim.USD),
		Time:     when,
	}}
	got := Transactions(txs)
	contains(t, got,
		"# Transactions",
		"2026-08-28 10:30:00", "BUY", "AAPL", "10", "$175.50", "$1,755.00",
	)

	if got := Transactions(nil); !strings.Contains(got, "No transactions recorded.") {
		t.Errorf("Transactions(nil) = %q", got)
	}
}

func TestPerformance(t *testing.T) {
	points := []tradesim.ValuationPoint{
		{Time: time.Date(2026, 8, 27, 16, 0, 0, 0, time.UTC), Value: tradesim.M(10000, tradesim.USD)},
		{Time: time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC), Value: tradesim.M(10045, tradesim.USD)},
	}
	got := Performance(points)
	contains(t, got,
		"# Performance",
		"2026-08-27 16:00:00", "$10,000.00",
		"2026-08-28 16:00:00", "$10,045.00",
	)

	if got := Performance(nil); !strings.Contains(got, "No valuations recorded yet.") {
		t.Errorf("Performance(nil) = %q", got)
	}
}
