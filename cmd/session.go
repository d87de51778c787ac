package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

// maxAttempts bounds every interactive prompt so a closed or hostile stdin
// cannot spin the session forever.
const maxAttempts = 3

type sessionCmd struct {
	in  *bufio.Scanner
	out io.Writer

	sys     *tradesim.TradingSystem
	store   *tradesim.Store
	current string
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "run an interactive trading session" }
func (*sessionCmd) Usage() string {
	return `tsim session

  Starts an interactive menu-driven session: login or register, then trade,
  inspect your portfolio and simulate market movements. Data is saved on
  every successful trade and on exit.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {}

func (c *sessionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sys, store, err := loadSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	c.sys, c.store = sys, store
	c.in = bufio.NewScanner(os.Stdin)
	c.out = os.Stdout

	if !c.loginOrRegister() {
		return subcommands.ExitSuccess
	}
	return c.run()
}

// prompt prints the message and reads one trimmed line. ok is false when
// stdin is exhausted.
func (c *sessionCmd) prompt(msg string) (line string, ok bool) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *sessionCmd) banner(title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", line, title, line)
}

func (c *sessionCmd) save() {
	if err := saveSystem(c.store, c.sys); err != nil {
		fmt.Fprintf(c.out, "Warning: Failed to save data: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Data saved successfully.")
}

// loginOrRegister runs the entry menu. Returns false when the user exits or
// all attempts are used up.
func (c *sessionCmd) loginOrRegister() bool {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c.banner("STOCK TRADING PLATFORM")
		fmt.Fprintln(c.out, "\n1. Login")
		fmt.Fprintln(c.out, "2. Register New Account")
		fmt.Fprintln(c.out, "3. Exit")

		choice, ok := c.prompt("\nSelect option (1-3): ")
		if !ok {
			return false
		}

		switch choice {
		case "1":
			if c.login() {
				return true
			}
		case "2":
			if c.register() {
				return true
			}
		case "3":
			c.save()
			fmt.Fprintln(c.out, "\nThank you for using Stock Trading Platform. Goodbye!")
			return false
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
	}
	fmt.Fprintln(c.out, "Too many invalid attempts.")
	return false
}

func (c *sessionCmd) login() bool {
	var ids []string
	for id := range c.sys.AccountIDs() {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		fmt.Fprintf(c.out, "Registered accounts: %s\n", strings.Join(ids, ", "))
	}
	id, ok := c.prompt("Enter Account ID: ")
	if !ok {
		return false
	}
	account, err := c.sys.Account(id)
	if err != nil {
		fmt.Fprintf(c.out, "Account %s not found. Please register first.\n", id)
		return false
	}
	c.current = account.ID()
	fmt.Fprintf(c.out, "\nWelcome back, %s!\n", account.Name())
	return true
}

func (c *sessionCmd) register() bool {
	id, ok := c.prompt("Enter Account ID: ")
	if !ok {
		return false
	}
	if _, err := c.sys.Account(id); err == nil {
		fmt.Fprintf(c.out, "Account %s already exists. Please login instead.\n", id)
		return false
	}
	name, ok := c.prompt("Enter your name: ")
	if !ok {
		return false
	}
	balanceInput, ok := c.prompt("Enter initial balance (default 10000): ")
	if !ok {
		return false
	}
	balance := 10000.0
	if balanceInput != "" {
		var err error
		balance, err = strconv.ParseFloat(balanceInput, 64)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid balance %q.\n", balanceInput)
			return false
		}
	}

	account, err := c.sys.Register(id, name, tradesim.M(balance, tradesim.USD))
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return false
	}
	c.current = account.ID()
	fmt.Fprintf(c.out, "\nWelcome, %s! Your account has been created with %s.\n", account.Name(), account.Balance())
	return true
}

// run drives the main menu until the user exits or stdin closes.
func (c *sessionCmd) run() subcommands.ExitStatus {
	for {
		c.banner("MAIN MENU")
		fmt.Fprintln(c.out, "\n1. View Market Data")
		fmt.Fprintln(c.out, "2. View Portfolio")
		fmt.Fprintln(c.out, "3. Buy Stock")
		fmt.Fprintln(c.out, "4. Sell Stock")
		fmt.Fprintln(c.out, "5. View Transaction History")
		fmt.Fprintln(c.out, "6. View Performance History")
		fmt.Fprintln(c.out, "7. Update Market Prices")
		fmt.Fprintln(c.out, "8. Switch Account")
		fmt.Fprintln(c.out, "9. Exit")

		choice, ok := c.prompt("\nSelect option (1-9): ")
		if !ok {
			c.save()
			return subcommands.ExitSuccess
		}

		switch choice {
		case "1":
			printMarkdown(renderer.Market(c.sys.Market().Quotes()))
		case "2":
			c.viewPortfolio()
		case "3":
			c.trade(c.sys.Buy)
		case "4":
			c.sell()
		case "5":
			c.viewHistory()
		case "6":
			c.viewPerformance()
		case "7":
			fmt.Fprintln(c.out, "\nUpdating market prices...")
			c.sys.Market().UpdateAll()
			c.sys.RecordValuations()
			fmt.Fprintln(c.out, "Market prices updated!")
			printMarkdown(renderer.Market(c.sys.Market().Quotes()))
			c.save()
		case "8":
			c.save()
			c.current = ""
			if !c.loginOrRegister() {
				return subcommands.ExitSuccess
			}
		case "9":
			c.save()
			fmt.Fprintln(c.out, "\nThank you for using Stock Trading Platform. Goodbye!")
			return subcommands.ExitSuccess
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
	}
}

func (c *sessionCmd) viewPortfolio() {
	report, err := c.sys.Report(c.current)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	printMarkdown(renderer.Portfolio(report))
}

func (c *sessionCmd) viewHistory() {
	account, err := c.sys.Account(c.current)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	var transactions []tradesim.Transaction
	for _, tx := range account.Transactions() {
		transactions = append(transactions, tx)
	}
	printMarkdown(renderer.Transactions(transactions))
}

func (c *sessionCmd) viewPerformance() {
	portfolio, err := c.sys.Portfolio(c.current)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	history := portfolio.History()
	if len(history) == 0 {
		fmt.Fprintln(c.out, "\nNo performance history available yet. Make some trades and update prices!")
		return
	}
	printMarkdown(renderer.Performance(history))
}

// trade prompts for a symbol and quantity then places the order.
func (c *sessionCmd) trade(order func(accountID, symbol string, quantity int64) (tradesim.OrderResult, error)) {
	printMarkdown(renderer.Market(c.sys.Market().Quotes()))

	symbol, ok := c.prompt("\nEnter stock symbol: ")
	if !ok {
		return
	}
	if !c.sys.Market().Has(symbol) {
		fmt.Fprintf(c.out, "Stock %s not found in market\n", strings.ToUpper(symbol))
		return
	}
	qtyInput, ok := c.prompt("Enter quantity: ")
	if !ok {
		return
	}
	quantity, err := strconv.ParseInt(qtyInput, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid number format. Please try again.")
		return
	}

	result, err := order(c.current, symbol, quantity)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "\n%s\n", result.Message)
	if result.OK {
		c.save()
	}
}

// sell shows current holdings before delegating to the shared trade flow.
func (c *sessionCmd) sell() {
	portfolio, err := c.sys.Portfolio(c.current)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	empty := true
	snapshot := c.sys.Market().Snapshot()
	fmt.Fprintln(c.out, "\nYour Holdings:")
	for symbol, quantity := range portfolio.Holdings() {
		empty = false
		fmt.Fprintf(c.out, "  %s: %d shares @ %s\n", symbol, quantity, snapshot[symbol])
	}
	if empty {
		fmt.Fprintln(c.out, "  You have no stocks to sell.")
		return
	}

	c.trade(c.sys.Sell)
}
