package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

type registerCmd struct {
	id      string
	name    string
	balance float64
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new trading account" }
func (*registerCmd) Usage() string {
	return `tsim register -id <account> -name <display name> [-balance <amount>]

  Creates a new account with an empty portfolio and the given starting cash.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "account identifier")
	f.StringVar(&c.name, "name", "", "account display name")
	f.Float64Var(&c.balance, "balance", 10000, "initial cash balance in USD")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	name := c.name
	if name == "" {
		name = c.id
	}

	sys, store, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	account, err := sys.Register(c.id, name, tradesim.M(c.balance, tradesim.USD))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveSystem(store, sys); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Account created: %s (%s) with %s\n", account.ID(), account.Name(), account.Balance())
	return subcommands.ExitSuccess
}
