package tradesim

import (
	"errors"
	"testing"
)

func TestTradingSystem_Report(t *testing.T) {
	s := testSystem(t)
	mustBuy(t, s, "alice", "AAPL", 10)
	mustBuy(t, s, "alice", "JNJ", 2)

	report, err := s.Report("alice")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	// 10000 - 1755.00 - 330.80
	if !report.Balance.Equal(usd(7914.20)) {
		t.Errorf("balance = %s, want %s", report.Balance, usd(7914.20))
	}
	if len(report.Holdings) != 2 {
		t.Fatalf("holdings rows = %d, want 2", len(report.Holdings))
	}
	// rows are ordered by symbol
	if report.Holdings[0].Symbol != "AAPL" || report.Holdings[1].Symbol != "JNJ" {
		t.Errorf("holdings order = %q, %q; want AAPL, JNJ", report.Holdings[0].Symbol, report.Holdings[1].Symbol)
	}
	if report.Holdings[0].Name != "Apple Inc." {
		t.Errorf("instrument name = %q, want %q", report.Holdings[0].Name, "Apple Inc.")
	}
	if !report.HoldingsValue.Equal(usd(2085.80)) {
		t.Errorf("holdings value = %s, want %s", report.HoldingsValue, usd(2085.80))
	}
	if !report.TotalValue.Equal(usd(10000)) {
		t.Errorf("total value = %s, want %s", report.TotalValue, usd(10000))
	}
	// Prices unchanged, so no return yet.
	if !report.OverallReturn.IsZero() {
		t.Errorf("overall return = %s, want zero", report.OverallReturn)
	}
	if !report.OverallReturnPct.Equal(0) {
		t.Errorf("overall return pct = %s, want 0.00%%", report.OverallReturnPct)
	}
}

func TestTradingSystem_ReportUnknownAccount(t *testing.T) {
	s := testSystem(t)
	_, err := s.Report("nobody")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Report error = %v, want NotFoundError", err)
	}
}
