package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkhq/inkwell/internal/gateway"
)

func TestKeyStore_ResolveUser(t *testing.T) {
	ks := NewKeyStore(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, ks.CreateKey(ctx, "user1", "sekrit-key", "laptop"))

	userID, err := ks.ResolveUser(ctx, "sekrit-key")
	require.NoError(t, err)
	require.Equal(t, "user1", userID)
}

func TestKeyStore_UnknownKey(t *testing.T) {
	ks := NewKeyStore(NewTestDB(t))

	_, err := ks.ResolveUser(context.Background(), "nope")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestKeyStore_StoresHashedKeys(t *testing.T) {
	db := NewTestDB(t)
	ks := NewKeyStore(db)
	ctx := context.Background()

	require.NoError(t, ks.CreateKey(ctx, "user1", "sekrit-key", ""))

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM user_keys WHERE key_hash = ?`, "sekrit-key").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "raw key must not be stored")

	err = db.QueryRow(`SELECT COUNT(*) FROM user_keys WHERE key_hash = ?`, HashKey("sekrit-key")).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
