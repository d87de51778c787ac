package renderer

import (
	"bytes"

	"github.com/etnz/tradesim"
	md "github.com/nao1215/markdown"
)

// Performance renders recorded portfolio valuations, oldest first.
func Performance(points []tradesim.ValuationPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance")

	if len(points) == 0 {
		doc.PlainText("No valuations recorded yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Time", "Value"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Time.Format("2006-01-02 15:04:05"),
			p.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
