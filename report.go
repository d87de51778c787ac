package tradesim

// HoldingLine is one row of a portfolio report.
type HoldingLine struct {
	Symbol   string
	Name     string
	Quantity int64
	Price    Money
	Value    Money
}

// PortfolioReport is the structured snapshot of one account's state and
// performance, computed by the engine and rendered elsewhere. The engine
// never prints.
type PortfolioReport struct {
	AccountID        string
	Name             string
	Balance          Money
	InitialBalance   Money
	Holdings         []HoldingLine
	HoldingsValue    Money
	ProfitLoss       ProfitLoss
	TotalValue       Money   // cash + holdings
	OverallReturn    Money   // against the initial balance
	OverallReturnPct Percent // 0 when the initial balance was zero
}

// Report computes the portfolio report for an account against the current
// market prices.
func (s *TradingSystem) Report(accountID string) (*PortfolioReport, error) {
	snap := s.market.Snapshot()
	names := make(map[string]string)
	for _, q := range s.market.Quotes() {
		names[q.Symbol] = q.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	account, portfolio, err := s.pair(accountID)
	if err != nil {
		return nil, err
	}

	report := &PortfolioReport{
		AccountID:      account.id,
		Name:           account.name,
		Balance:        account.balance,
		InitialBalance: account.initial,
		HoldingsValue:  M(0, USD),
	}
	for symbol, quantity := range portfolio.Holdings() {
		price, ok := snap[symbol]
		if !ok {
			// delisted symbol, it contributes nothing
			continue
		}
		value := price.Mul(quantity)
		report.Holdings = append(report.Holdings, HoldingLine{
			Symbol:   symbol,
			Name:     names[symbol],
			Quantity: quantity,
			Price:    price,
			Value:    value,
		})
		report.HoldingsValue = report.HoldingsValue.Add(value)
	}
	report.ProfitLoss = portfolio.ProfitLoss(snap)
	report.TotalValue = report.Balance.Add(report.HoldingsValue)
	report.OverallReturn = report.TotalValue.Sub(report.InitialBalance)
	if report.InitialBalance.IsPositive() {
		report.OverallReturnPct = report.OverallReturn.PercentOf(report.InitialBalance)
	}
	return report, nil
}
