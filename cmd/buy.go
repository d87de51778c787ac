package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type buyCmd struct {
	account string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current market price" }
func (*buyCmd) Usage() string {
	return `tsim buy -a <account> <symbol> <quantity>

  Places a buy order at the current market price. A rejected order (unknown
  symbol, insufficient funds) is reported but is not an error.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to trade with")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, quantity, status := tradeArgs(c.account, f)
	if status != subcommands.ExitSuccess {
		return status
	}

	sys, store, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	result, err := sys.Buy(c.account, symbol, quantity)
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

// tradeArgs validates the shared positional arguments of buy and sell.
func tradeArgs(account string, f *flag.FlagSet) (symbol string, quantity int64, status subcommands.ExitStatus) {
	if account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return "", 0, subcommands.ExitUsageError
	}
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <symbol> <quantity> arguments.")
		return "", 0, subcommands.ExitUsageError
	}
	quantity, err := strconv.ParseInt(f.Arg(1), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q: %v\n", f.Arg(1), err)
		return "", 0, subcommands.ExitUsageError
	}
	return f.Arg(0), quantity, subcommands.ExitSuccess
}
