package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type updateCmd struct {
	rounds int
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "simulate price movements and record valuations" }
func (*updateCmd) Usage() string {
	return `tsim update [-n <rounds>]

  Applies simulated price movements to every stock, records a portfolio
  valuation point for every account at the new prices, and saves the result.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rounds, "n", 1, "number of price updates to simulate")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sys, store, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for i := 0; i < c.rounds; i++ {
		sys.Market().UpdateAll()
	}
	sys.RecordValuations()

	if err := saveSystem(store, sys); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Market(sys.Market().Quotes()))
	return subcommands.ExitSuccess
}
