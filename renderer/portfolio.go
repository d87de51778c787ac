package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradesim"
	md "github.com/nao1215/markdown"
)

// Portfolio renders a full account report: cash, holdings, and performance.
func Portfolio(r *tradesim.PortfolioReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio of %s", r.Name))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Cash Balance"),
			md.Bold(r.Balance.String()),
		},
		Rows: [][]string{
			{"Account", r.AccountID},
			{"Initial Balance", r.InitialBalance.String()},
		},
	})

	if len(r.Holdings) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Symbol", "Name", "Quantity", "Price", "Value"},
			Rows:   [][]string{},
		}
		for _, l := range r.Holdings {
			table.Rows = append(table.Rows, []string{
				l.Symbol,
				l.Name,
				fmt.Sprintf("%d", l.Quantity),
				l.Price.String(),
				l.Value.String(),
			})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Holdings Value: %s", r.HoldingsValue.String()))
	}

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Value"),
			md.Bold(r.TotalValue.String()),
			"",
		},
		Rows: [][]string{
			{"Cost Basis", r.ProfitLoss.CostBasis.String(), ""},
			{"Current Value", r.ProfitLoss.CurrentValue.String(), ""},
			{"Unrealized P&L", r.ProfitLoss.PnL.SignedString(), r.ProfitLoss.PnLPercent.SignedString()},
			{"Overall Return", r.OverallReturn.SignedString(), r.OverallReturnPct.SignedString()},
		},
	})

	return doc.String()
}
