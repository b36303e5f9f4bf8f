package sql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gsql "github.com/queuectl/queuectl/store/sql"
)

func newTestStore(t *testing.T) *gsql.Store {
	t.Helper()
	ctx := context.Background()
	// A single in-memory connection per test; Open pins MaxOpenConns to
	// 1 and configures WAL + busy_timeout regardless.
	db, err := gsql.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return gsql.NewStore(db)
}
