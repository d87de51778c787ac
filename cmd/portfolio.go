package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct {
	account string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display an account's cash, holdings and performance" }
func (*portfolioCmd) Usage() string {
	return `tsim portfolio -a <account>

  Displays the account's cash balance, current holdings valued at market
  prices, and unrealized profit and loss.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to report on")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}

	sys, _, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := sys.Report(c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Portfolio(report))
	return subcommands.ExitSuccess
}
