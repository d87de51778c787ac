package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct {
	account string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current market price" }
func (*sellCmd) Usage() string {
	return `tsim sell -a <account> <symbol> <quantity>

  Places a sell order at the current market price. A rejected order (unknown
  symbol, insufficient shares) is reported but is not an error.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to trade with")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, quantity, status := tradeArgs(c.account, f)
	if status != subcommands.ExitSuccess {
		return status
	}

	sys, store, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	result, err := sys.Sell(c.account, symbol, quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(result.Message)
	if !result.OK {
		return subcommands.ExitSuccess
	}

	if err := saveSystem(store, sys); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
