package tradesim

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side is the direction of an order.
type Side string

const (
	BuySide  Side = "BUY"
	SellSide Side = "SELL"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(s)) {
	case BuySide:
		return BuySide, nil
	case SellSide:
		return SellSide, nil
	default:
		return "", &ValidationError{Msg: fmt.Sprintf("unknown transaction side: %q", s)}
	}
}

// Transaction is the immutable record of one executed order. The price is the
// market price at execution time and is never revisited, so Total is fixed at
// Quantity × Price forever.
type Transaction struct {
	ID        string    `json:"id"`
	Side      Side      `json:"side"`
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	Price     Money     `json:"price"` // per-share price snapshot at execution
	Total     Money     `json:"total"` // Quantity × Price
	AccountID string    `json:"account"`
	Time      time.Time `json:"time"`
}

// NewTransaction builds the record for an executed order. The symbol is
// normalized to uppercase and the total is computed from the price snapshot.
func NewTransaction(side Side, symbol string, quantity int64, price Money, accountID string) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Side:      side,
		Symbol:    strings.ToUpper(symbol),
		Quantity:  quantity,
		Price:     price,
		Total:     price.Mul(quantity),
		AccountID: accountID,
		Time:      time.Now(),
	}
}

// Equal reports whether two transactions are the same record.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Side == o.Side &&
		t.Symbol == o.Symbol &&
		t.Quantity == o.Quantity &&
		t.Price.Equal(o.Price) &&
		t.Total.Equal(o.Total) &&
		t.AccountID == o.AccountID &&
		t.Time.Equal(o.Time)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %d shares of %s @ %s = %s", t.Side, t.Quantity, t.Symbol, t.Price, t.Total)
}
