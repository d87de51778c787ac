package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradesim"
	md "github.com/nao1215/markdown"
)

// Transactions renders a trade history as a markdown table, oldest first.
func Transactions(txs []tradesim.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	if len(txs) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Side", "Symbol", "Quantity", "Price", "Total"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Time.Format("2006-01-02 15:04:05"),
			string(tx.Side),
			tx.Symbol,
			fmt.Sprintf("%d", tx.Quantity),
			tx.Price.String(),
			tx.Total.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
