package main

import (
	"context"
	"fmt"

	"github.com/queuectl/queuectl/store"
	gsql "github.com/queuectl/queuectl/store/sql"
)

// openStore opens the default on-disk store, running any pending
// schema migrations.
func openStore(ctx context.Context) (store.Store, func(), error) {
	path, err := defaultDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := gsql.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	return gsql.NewStore(db), func() { db.Close() }, nil
}
