// Package cmd implements the CLI application to run the trading simulator.
package cmd

import (
	"flag"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the verbs, then Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "accounts")
	c.Register(&portfolioCmd{}, "accounts")
	c.Register(&historyCmd{}, "accounts")
	c.Register(&performanceCmd{}, "accounts")

	c.Register(&marketCmd{}, "market")
	c.Register(&updateCmd{}, "market")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&sessionCmd{}, "trading")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", ".tradesim", "Path to the folder holding accounts and portfolios (JSONL format)")
var catalogFile = flag.String("catalog", "", "Path to a YAML stock catalog. Defaults to the built-in list.")

// loadMarket builds the market from the catalog flag, or the built-in list.
func loadMarket() (*tradesim.Market, error) {
	entries := tradesim.DefaultCatalog()
	if *catalogFile != "" {
		var err error
		entries, err = tradesim.LoadCatalog(*catalogFile)
		if err != nil {
			return nil, err
		}
	}
	return tradesim.NewMarket(entries, nil)
}

// loadSystem restores the full trading system from the data folder.
func loadSystem() (*tradesim.TradingSystem, *tradesim.Store, error) {
	market, err := loadMarket()
	if err != nil {
		return nil, nil, err
	}
	store, err := tradesim.NewStore(*dataDir)
	if err != nil {
		return nil, nil, err
	}
	accounts, portfolios := store.LoadAll()
	sys := tradesim.NewTradingSystem(market)
	sys.Restore(accounts, portfolios)
	return sys, store, nil
}

// saveSystem writes the current accounts and portfolios back to the data folder.
func saveSystem(store *tradesim.Store, sys *tradesim.TradingSystem) error {
	accounts, portfolios := sys.Snapshot()
	return store.SaveAll(accounts, portfolios)
}
