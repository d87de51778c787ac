package tradesim

import "fmt"

// The error taxonomy is deliberately small. Typed errors cover the direct
// lookup and mutation paths; business-rule rejections on the order path are
// OrderResult values and never appear here.

// NotFoundError reports a direct lookup of an unknown account, portfolio or
// instrument.
type NotFoundError struct {
	Kind string // "account", "portfolio" or "instrument"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports malformed input at the API boundary, such as a
// non-positive price. The operation has no state change.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InsufficientFundsError is returned by Account.Debit when the debit would
// make the balance negative. TradingSystem pre-checks funds, so seeing this
// error surface through an order means an invariant was broken upstream.
type InsufficientFundsError struct {
	Need Money
	Have Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %s, have %s", e.Need, e.Have)
}
