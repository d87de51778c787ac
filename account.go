package tradesim

import (
	"iter"
	"strings"
)

// Account is the cash ledger of one user: a balance, the immutable balance it
// started with, and the append-only list of executed transactions.
//
// Account trusts its callers: Append does no validation, and Debit/Credit
// only guard the balance itself. Order-level validation is the job of
// TradingSystem.
type Account struct {
	id           string
	name         string
	balance      Money
	initial      Money
	transactions []Transaction
}

// NewAccount creates an account with its starting cash balance.
func NewAccount(id, name string, initialBalance Money) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Msg: "account id is missing"}
	}
	if initialBalance.IsNegative() {
		return nil, &ValidationError{Msg: "initial balance cannot be negative"}
	}
	return &Account{
		id:      id,
		name:    name,
		balance: initialBalance,
		initial: initialBalance,
	}, nil
}

func (a *Account) ID() string   { return a.id }
func (a *Account) Name() string { return a.name }

// Balance returns the current cash balance.
func (a *Account) Balance() Money { return a.balance }

// InitialBalance returns the balance the account was created with.
func (a *Account) InitialBalance() Money { return a.initial }

// Debit removes cash from the account. It fails with InsufficientFundsError
// when the debit would make the balance negative, leaving the balance
// untouched.
func (a *Account) Debit(amount Money) error {
	if !amount.IsPositive() {
		return &ValidationError{Msg: "debit amount must be positive"}
	}
	if a.balance.LessThan(amount) {
		return &InsufficientFundsError{Need: amount, Have: a.balance}
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Credit adds cash to the account.
func (a *Account) Credit(amount Money) error {
	if !amount.IsPositive() {
		return &ValidationError{Msg: "credit amount must be positive"}
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Append records an executed transaction. Pure append, no validation.
func (a *Account) Append(tx Transaction) {
	a.transactions = append(a.transactions, tx)
}

// Transactions returns an iterator over the account's transactions in
// execution order.
func (a *Account) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range a.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// TotalInvested is the net cash committed to instruments across the full
// transaction history: buys add their total, sells subtract theirs.
func (a *Account) TotalInvested() Money {
	total := M(0, USD)
	for _, tx := range a.transactions {
		switch tx.Side {
		case BuySide:
			total = total.Add(tx.Total)
		case SellSide:
			total = total.Sub(tx.Total)
		}
	}
	return total
}
