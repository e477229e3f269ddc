// Package session persists the tracker's single saved account and exposes
// the per-run session snapshot read by the aggregation pipeline.
package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNoAccount means no credentials have been saved yet. Callers surface it
// as a login prompt rather than a failure.
var ErrNoAccount = errors.New("no saved account")

// Account is the stored identity of one Jira instance: its base URL and the
// base64 "email:api-token" basic-auth pair.
type Account struct {
	BaseURL    string
	EncodedKey string
}

// Store keeps accounts in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the account database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	base_url TEXT PRIMARY KEY,
	encoded_key TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create session schema: %w", err)
	}
	return nil
}

// Save stores an account, replacing any previous credentials for the same
// base URL.
func (s *Store) Save(account Account) error {
	if account.BaseURL == "" || account.EncodedKey == "" {
		return errors.New("account requires base URL and credentials")
	}
	_, err := s.db.Exec(
		`INSERT INTO accounts (base_url, encoded_key) VALUES (?, ?)
		 ON CONFLICT(base_url) DO UPDATE SET encoded_key = excluded.encoded_key`,
		account.BaseURL, account.EncodedKey,
	)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Load returns the most recently saved account, or ErrNoAccount.
func (s *Store) Load() (Account, error) {
	row := s.db.QueryRow(`SELECT base_url, encoded_key FROM accounts ORDER BY created_at DESC, base_url LIMIT 1`)

	var account Account
	if err := row.Scan(&account.BaseURL, &account.EncodedKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNoAccount
		}
		return Account{}, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}

// Clear removes every stored account.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	return nil
}
