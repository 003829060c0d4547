package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/inkhq/inkwell/internal/gateway"
)

// KeyStore resolves API keys to user ids. Keys are stored hashed; the raw
// key never touches the database.
type KeyStore struct {
	db *DB
}

// NewKeyStore creates a new KeyStore
func NewKeyStore(db *DB) *KeyStore {
	return &KeyStore{db: db}
}

// CreateKey registers a raw API key for a user
func (s *KeyStore) CreateKey(ctx context.Context, userID, rawKey, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_keys (key_hash, user_id, description) VALUES (?, ?, ?)`,
		HashKey(rawKey), userID, description)
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}
	return nil
}

// ResolveUser returns the user id owning the raw key and stamps last_used
func (s *KeyStore) ResolveUser(ctx context.Context, rawKey string) (string, error) {
	hash := HashKey(rawKey)

	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM user_keys WHERE key_hash = ?`, hash).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", gateway.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve key: %w", err)
	}

	// Best effort; a failed stamp does not block the request.
	_, _ = s.db.ExecContext(ctx,
		`UPDATE user_keys SET last_used = CURRENT_TIMESTAMP WHERE key_hash = ?`, hash)

	return userID, nil
}

// HashKey returns the hex-encoded SHA-256 of a raw key
func HashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}
