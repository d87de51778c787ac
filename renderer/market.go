package renderer

import (
	"bytes"

	"github.com/etnz/tradesim"
	md "github.com/nao1215/markdown"
)

// Market renders the current quote board as a markdown table.
func Market(quotes []tradesim.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Price", "Change"},
		Rows:   [][]string{},
	}
	for _, q := range quotes {
		table.Rows = append(table.Rows, []string{
			q.Symbol,
			q.Name,
			q.Price.String(),
			q.Change.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
