package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	account string
	head    int
	tail    int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list an account's transactions" }
func (*historyCmd) Usage() string {
	return `tsim history -a <account> [-head <n>] [-tail <n>]

  Lists the account's transactions in chronological order, with options for
  limiting the output.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to report on")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	sys, _, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	account, err := sys.Account(c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var transactions []tradesim.Transaction
	for _, tx := range account.Transactions() {
		transactions = append(transactions, tx)
	}
	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))
	return subcommands.ExitSuccess
}
