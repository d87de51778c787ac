package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type performanceCmd struct {
	account string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display recorded portfolio valuations" }
func (*performanceCmd) Usage() string {
	return `tsim performance -a <account>

  Displays the account's portfolio value over time. Valuation points are
  recorded by the update command and by interactive sessions.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to report on")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}

	sys, _, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	portfolio, err := sys.Portfolio(c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Performance(portfolio.History()))
	return subcommands.ExitSuccess
}
