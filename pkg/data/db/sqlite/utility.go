package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"kairos/pkg/common"
)

func Connect(ctx context.Context, path string) (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		return nil, err
	}

	return dbConn, nil
}

func CreateTradesTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS trades (
		position_id INTEGER NOT NULL,
		run_id      TEXT    NOT NULL,
		symbol      TEXT    NOT NULL,
		side        TEXT    NOT NULL,
		quantity    REAL    NOT NULL,
		open_time   TEXT    NOT NULL,
		close_time  TEXT    NOT NULL,
		open_price  REAL    NOT NULL,
		close_price REAL    NOT NULL,
		profit      REAL    NOT NULL,
		PRIMARY KEY (position_id, run_id)
	);
	`

	_, err := db.ExecContext(ctx, query)
	return err
}

func InsertPosition(ctx context.Context, db *sql.DB, runId string, position common.Position) error {
	query := `
	INSERT INTO trades (
		position_id,
		run_id,
		symbol,
		side,
		quantity,
		open_time,
		close_time,
		open_price,
		close_price,
		profit
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (position_id, run_id) DO NOTHING;
	`

	quantity, _ := position.Quantity.Float64()
	openPrice, _ := position.OpenPrice.Float64()
	closePrice, _ := position.ClosePrice.Float64()
	profit, _ := position.PointProfit().Float64()

	_, err := db.ExecContext(
		ctx,
		query,
		position.Id,
		runId,
		position.Symbol,
		position.Side.String(),
		quantity,
		position.OpenTime,
		position.CloseTime,
		openPrice,
		closePrice,
		profit,
	)

	return err
}
