package tradesim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogEntry is one (symbol, name, price) triple of the instrument catalog
// consumed by NewMarket.
type CatalogEntry struct {
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Price  float64 `yaml:"price"`
}

// DefaultCatalog returns the built-in instrument catalog used when no
// catalog file is given.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 175.50},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.30},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.85},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 145.20},
		{Symbol: "TSLA", Name: "Tesla Inc.", Price: 248.50},
		{Symbol: "META", Name: "Meta Platforms Inc.", Price: 485.00},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Price: 875.00},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Price: 180.25},
		{Symbol: "V", Name: "Visa Inc.", Price: 280.75},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Price: 165.40},
	}
}

// catalogFile is the YAML shape of a catalog file:
//
//	instruments:
//	  - symbol: AAPL
//	    name: Apple Inc.
//	    price: 175.50
type catalogFile struct {
	Instruments []CatalogEntry `yaml:"instruments"`
}

// LoadCatalog reads an instrument catalog from a YAML file.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if len(file.Instruments) == 0 {
		return nil, &ValidationError{Msg: fmt.Sprintf("catalog %q lists no instruments", path)}
	}
	for _, e := range file.Instruments {
		if e.Symbol == "" {
			return nil, &ValidationError{Msg: fmt.Sprintf("catalog %q has an entry with no symbol", path)}
		}
		if e.Name == "" {
			return nil, &ValidationError{Msg: fmt.Sprintf("catalog entry %q has no name", e.Symbol)}
		}
		if e.Price <= 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("catalog price for %q must be positive, got %v", e.Symbol, e.Price)}
		}
	}
	return file.Instruments, nil
}
