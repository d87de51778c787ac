// Package tradesim implements a single-tenant stock-trading ledger: accounts
// hold cash, own integer share positions in a fixed catalog of instruments,
// and issue buy/sell orders that atomically update cash and holdings while
// keeping an auditable, append-only transaction log.
//
// The core pieces are:
//   - Market: the price source. It holds the current price and the full price
//     history of every instrument, and produces new prices with a bounded
//     random walk driven by an injectable random source.
//   - Account: the cash ledger. Balance, immutable initial balance, and the
//     chronological list of executed transactions.
//   - Portfolio: the position set. Per-symbol share counts derived entirely
//     from replaying the transaction log, point-in-time valuation and
//     profit/loss against a price snapshot, and a valuation history.
//   - TradingSystem: the order executor. It validates an order against the
//     market price and the account state, and on success performs the
//     compound mutation across Account and Portfolio as one atomic unit.
//
// Business-rule rejections (unknown symbol, insufficient funds or shares,
// non-positive quantity) are OrderResult values, not errors. Only genuine
// faults, such as a missing account, travel on the error channel.
//
// This package serves as the foundational logic for the `tsim` command-line
// tool; it performs no terminal output of its own.
package tradesim
