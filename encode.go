package tradesim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// On-disk encoding: JSONL with an explicit versioned header record, one JSON
// object per line. The format is decoupled from the in-memory representation;
// in particular holdings are never persisted, they are rebuilt by replaying
// the stored transactions so a decoded portfolio always satisfies the
// holdings-equals-replay invariant.

const (
	accountsFormat   = "tradesim/accounts"
	portfoliosFormat = "tradesim/portfolios"
	formatVersion    = 1
)

// header is the first line of every store file.
type header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// accountRecord is the persisted form of an Account.
type accountRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Balance      Money         `json:"balance"`
	Initial      Money         `json:"initial"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// portfolioRecord is the persisted form of a Portfolio. No holdings field,
// see above.
type portfolioRecord struct {
	AccountID    string           `json:"account"`
	Transactions []Transaction    `json:"transactions,omitempty"`
	History      []ValuationPoint `json:"history,omitempty"`
}

func encodeLines(w io.Writer, format string, lines []any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(header{Format: format, Version: formatVersion}); err != nil {
		return fmt.Errorf("encoding %s header: %w", format, err)
	}
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("encoding %s record: %w", format, err)
		}
	}
	return nil
}

// decodeLines validates the header line and yields every following non-empty
// line to decode.
func decodeLines(r io.Reader, format string, decode func([]byte) error) error {
	scanner := bufio.NewScanner(r)
	seenHeader := false
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !seenHeader {
			var h header
			if err := json.Unmarshal(line, &h); err != nil {
				return fmt.Errorf("could not read %s header: %w", format, err)
			}
			if h.Format != format {
				return fmt.Errorf("unexpected format %q, want %q", h.Format, format)
			}
			if h.Version != formatVersion {
				return fmt.Errorf("unsupported %s version %d, want %d", format, h.Version, formatVersion)
			}
			seenHeader = true
			continue
		}
		if err := decode(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", format, err)
	}
	if !seenHeader {
		return fmt.Errorf("missing %s header", format)
	}
	return nil
}

// validateSides rejects stored transactions whose side is not a known value,
// before they can poison a holdings replay.
func validateSides(txs []Transaction) error {
	for i, tx := range txs {
		if _, err := ParseSide(string(tx.Side)); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

// EncodeAccounts writes accounts as versioned JSONL, ordered by id.
func EncodeAccounts(w io.Writer, accounts map[string]*Account) error {
	lines := make([]any, 0, len(accounts))
	for _, id := range sortedKeys(accounts) {
		a := accounts[id]
		lines = append(lines, accountRecord{
			ID:           a.id,
			Name:         a.name,
			Balance:      a.balance,
			Initial:      a.initial,
			Transactions: a.transactions,
		})
	}
	return encodeLines(w, accountsFormat, lines)
}

// DecodeAccounts reads a versioned JSONL stream of accounts.
func DecodeAccounts(r io.Reader) (map[string]*Account, error) {
	accounts := make(map[string]*Account)
	err := decodeLines(r, accountsFormat, func(line []byte) error {
		var rec accountRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("could not decode account line %q: %w", string(line), err)
		}
		if rec.ID == "" {
			return fmt.Errorf("account line %q has no id", string(line))
		}
		if err := validateSides(rec.Transactions); err != nil {
			return fmt.Errorf("account %s: %w", rec.ID, err)
		}
		accounts[rec.ID] = &Account{
			id:           rec.ID,
			name:         rec.Name,
			balance:      rec.Balance,
			initial:      rec.Initial,
			transactions: rec.Transactions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// EncodePortfolios writes portfolios as versioned JSONL, ordered by account.
func EncodePortfolios(w io.Writer, portfolios map[string]*Portfolio) error {
	lines := make([]any, 0, len(portfolios))
	for _, id := range sortedKeys(portfolios) {
		p := portfolios[id]
		lines = append(lines, portfolioRecord{
			AccountID:    p.accountID,
			Transactions: p.transactions,
			History:      p.history,
		})
	}
	return encodeLines(w, portfoliosFormat, lines)
}

// DecodePortfolios reads a versioned JSONL stream of portfolios, rebuilding
// each holdings map from its transaction log.
func DecodePortfolios(r io.Reader) (map[string]*Portfolio, error) {
	portfolios := make(map[string]*Portfolio)
	err := decodeLines(r, portfoliosFormat, func(line []byte) error {
		var rec portfolioRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("could not decode portfolio line %q: %w", string(line), err)
		}
		if rec.AccountID == "" {
			return fmt.Errorf("portfolio line %q has no account", string(line))
		}
		if err := validateSides(rec.Transactions); err != nil {
			return fmt.Errorf("portfolio %s: %w", rec.AccountID, err)
		}
		p := &Portfolio{
			accountID:    rec.AccountID,
			holdings:     make(map[string]int64),
			transactions: rec.Transactions,
			history:      rec.History,
		}
		for _, tx := range p.transactions {
			applyHolding(p.holdings, tx)
		}
		portfolios[rec.AccountID] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return portfolios, nil
}
