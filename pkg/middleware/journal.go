package middleware

import (
	"context"
	"database/sql"
	"log/slog"

	"kairos/pkg/bus"
	"kairos/pkg/common"
	"kairos/pkg/data/db/sqlite"
)

// Journal persists every closed trade to the run's trade journal.
// Writes are synchronous so the journal stays in close order.
type Journal struct {
	db    *sql.DB
	runId string
}

func NewJournal(db *sql.DB, runId string) *Journal {
	return &Journal{
		db:    db,
		runId: runId,
	}
}

func (j *Journal) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, position common.Position) {
		if err := sqlite.InsertPosition(ctx, j.db, j.runId, position); err != nil {
			slog.Warn("unable to insert position", "error", err)
		}
		handler(ctx, position)
	}
}
