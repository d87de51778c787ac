package tradesim

import (
	"bytes"
	"maps"
	"strings"
	"testing"
)

func TestEncodeDecodeAccounts(t *testing.T) {
	a, err := NewAccount("alice", "Alice", usd(10000))
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	tx := NewTransaction(BuySide, "AAPL", 10, usd(175.50), "alice")
	if err := a.Debit(tx.Total); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	a.Append(tx)

	var buf bytes.Buffer
	if err := EncodeAccounts(&buf, map[string]*Account{"alice": a}); err != nil {
		t.Fatalf("EncodeAccounts: %v", err)
	}

	decoded, err := DecodeAccounts(&buf)
	if err != nil {
		t.Fatalf("DecodeAccounts: %v", err)
	}
	got, ok := decoded["alice"]
	if !ok {
		t.Fatal("alice missing after decode")
	}
	if got.Name() != "Alice" {
		t.Errorf("name = %q, want %q", got.Name(), "Alice")
	}
	if !got.Balance().Equal(usd(8245)) {
		t.Errorf("balance = %s, want %s", got.Balance(), usd(8245))
	}
	if !got.InitialBalance().Equal(usd(10000)) {
		t.Errorf("initial = %s, want %s", got.InitialBalance(), usd(10000))
	}
	for i, decodedTx := range got.Transactions() {
		if i != 0 {
			t.Fatalf("unexpected extra transaction %d", i)
		}
		if decodedTx.ID != tx.ID || decodedTx.Side != tx.Side ||
			decodedTx.Quantity != tx.Quantity || !decodedTx.Price.Equal(tx.Price) ||
			!decodedTx.Total.Equal(tx.Total) {
			t.Errorf("decoded transaction %+v differs from %+v", decodedTx, tx)
		}
	}
}

func TestEncodeDecodePortfolios(t *testing.T) {
	p := NewPortfolio("alice")
	p.Apply(NewTransaction(BuySide, "AAPL", 10, usd(175.50), "alice"))
	p.Apply(NewTransaction(SellSide, "AAPL", 4, usd(180), "alice"))
	p.Apply(NewTransaction(BuySide, "JNJ", 2, usd(165.40), "alice"))
	p.RecordValuation(PriceSnapshot{"AAPL": usd(180), "JNJ": usd(165.40)})

	var buf bytes.Buffer
	if err := EncodePortfolios(&buf, map[string]*Portfolio{"alice": p}); err != nil {
		t.Fatalf("EncodePortfolios: %v", err)
	}

	decoded, err := DecodePortfolios(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolios: %v", err)
	}
	got, ok := decoded["alice"]
	if !ok {
		t.Fatal("alice missing after decode")
	}
	// Holdings are not persisted; they must come back from replay.
	if !maps.Equal(got.Rebuilt(), p.Rebuilt()) {
		t.Errorf("rebuilt holdings %v, want %v", got.Rebuilt(), p.Rebuilt())
	}
	if got.Quantity("AAPL") != 6 || got.Quantity("JNJ") != 2 {
		t.Errorf("decoded positions AAPL=%d JNJ=%d, want 6 and 2", got.Quantity("AAPL"), got.Quantity("JNJ"))
	}
	history := got.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if !history[0].Value.Equal(usd(1410.80)) {
		t.Errorf("valuation point = %s, want %s", history[0].Value, usd(1410.80))
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"wrong format", `{"format":"tradesim/portfolios","version":1}` + "\n"},
		{"future version", `{"format":"tradesim/accounts","version":2}` + "\n"},
		{"not json", "users.dat binary blob\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeAccounts(strings.NewReader(tc.input)); err == nil {
				t.Error("expected decode error, got nil")
			}
		})
	}
}

func TestDecodeRejectsUnknownSide(t *testing.T) {
	header := `{"format":"tradesim/accounts","version":1}` + "\n"
	line := `{"id":"alice","balance":{"amount":100,"currency":"USD"},"initial":{"amount":100,"currency":"USD"},` +
		`"transactions":[{"id":"t1","side":"HOLD","symbol":"AAPL","quantity":1,` +
		`"price":{"amount":10,"currency":"USD"},"total":{"amount":10,"currency":"USD"},` +
		`"account":"alice","time":"2026-08-28T10:00:00Z"}]}` + "\n"

	_, err := DecodeAccounts(strings.NewReader(header + line))
	if err == nil {
		t.Fatal("expected decode error for unknown side, got nil")
	}
	if !strings.Contains(err.Error(), "HOLD") {
		t.Errorf("error %q does not name the bad side", err)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	s := testSystem(t)
	mustBuy(t, s, "alice", "AAPL", 10)
	accounts, portfolios := s.Snapshot()
	if err := store.SaveAll(accounts, portfolios); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	loadedAccounts, loadedPortfolios := store.LoadAll()
	restored := NewTradingSystem(testMarket(t))
	restored.Restore(loadedAccounts, loadedPortfolios)

	account, err := restored.Account("alice")
	if err != nil {
		t.Fatalf("Account after reload: %v", err)
	}
	if !account.Balance().Equal(usd(8245)) {
		t.Errorf("reloaded balance = %s, want %s", account.Balance(), usd(8245))
	}
	portfolio, err := restored.Portfolio("alice")
	if err != nil {
		t.Fatalf("Portfolio after reload: %v", err)
	}
	if got := portfolio.Quantity("AAPL"); got != 10 {
		t.Errorf("reloaded AAPL position = %d, want 10", got)
	}

	// The reloaded state keeps trading correctly.
	res, err := restored.Sell("alice", "AAPL", 10)
	if err != nil {
		t.Fatalf("Sell after reload: %v", err)
	}
	if !res.OK {
		t.Fatalf("Sell after reload rejected: %s", res.Message)
	}
	if !account.Balance().Equal(usd(10000)) {
		t.Errorf("balance after reload round trip = %s, want %s", account.Balance(), usd(10000))
	}
}

func TestStore_ColdStart(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Absent files degrade to empty mappings, never a fault.
	accounts, portfolios := store.LoadAll()
	if len(accounts) != 0 || len(portfolios) != 0 {
		t.Errorf("cold start loaded %d accounts and %d portfolios, want none", len(accounts), len(portfolios))
	}
}
