package tradesim

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Store persists accounts and portfolios as JSONL files in one directory.
//
// Loading degrades gracefully: a missing or unreadable file yields an empty
// mapping with a logged warning, never a fault, so the engine can always
// start cold. Saves are atomic (temp file then rename).
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) accountsPath() string   { return filepath.Join(s.dir, "accounts.jsonl") }
func (s *Store) portfoliosPath() string { return filepath.Join(s.dir, "portfolios.jsonl") }

// LoadAccounts reads the saved accounts, or an empty mapping when the store
// is absent or unreadable.
func (s *Store) LoadAccounts() map[string]*Account {
	f, err := os.Open(s.accountsPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: could not open %s: %v", s.accountsPath(), err)
		}
		return make(map[string]*Account)
	}
	defer f.Close()

	accounts, err := DecodeAccounts(f)
	if err != nil {
		log.Printf("warning: could not decode %s, starting cold: %v", s.accountsPath(), err)
		return make(map[string]*Account)
	}
	return accounts
}

// LoadPortfolios reads the saved portfolios, or an empty mapping when the
// store is absent or unreadable.
func (s *Store) LoadPortfolios() map[string]*Portfolio {
	f, err := os.Open(s.portfoliosPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: could not open %s: %v", s.portfoliosPath(), err)
		}
		return make(map[string]*Portfolio)
	}
	defer f.Close()

	portfolios, err := DecodePortfolios(f)
	if err != nil {
		log.Printf("warning: could not decode %s, starting cold: %v", s.portfoliosPath(), err)
		return make(map[string]*Portfolio)
	}
	return portfolios
}

// SaveAccounts writes the accounts file. It reports success; a failure is
// logged by the caller and never crashes the session.
func (s *Store) SaveAccounts(accounts map[string]*Account) error {
	return s.write(s.accountsPath(), func(f *os.File) error {
		return EncodeAccounts(f, accounts)
	})
}

// SavePortfolios writes the portfolios file.
func (s *Store) SavePortfolios(portfolios map[string]*Portfolio) error {
	return s.write(s.portfoliosPath(), func(f *os.File) error {
		return EncodePortfolios(f, portfolios)
	})
}

// SaveAll saves both files, joining any errors.
func (s *Store) SaveAll(accounts map[string]*Account, portfolios map[string]*Portfolio) error {
	return errors.Join(s.SaveAccounts(accounts), s.SavePortfolios(portfolios))
}

// LoadAll loads both mappings.
func (s *Store) LoadAll() (map[string]*Account, map[string]*Portfolio) {
	return s.LoadAccounts(), s.LoadPortfolios()
}

// write encodes into a temp file in the store directory and renames it over
// the target, so a failed save never truncates existing data.
func (s *Store) write(path string, encode func(*os.File) error) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file for %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %q: %w", path, err)
	}
	return nil
}
