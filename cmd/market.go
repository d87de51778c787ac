package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type marketCmd struct {
	rounds int
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "display current stock quotes" }
func (*marketCmd) Usage() string {
	return `tsim market [-n <rounds>]

  Displays the stock catalog with current prices. With -n, applies that many
  simulated price movements first so quotes show a change column.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rounds, "n", 0, "number of price updates to simulate before displaying")
}

func (c *marketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := loadMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for i := 0; i < c.rounds; i++ {
		market.UpdateAll()
	}
	printMarkdown(renderer.Market(market.Quotes()))
	return subcommands.ExitSuccess
}
