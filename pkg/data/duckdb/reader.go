package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %v", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadBars streams the symbol's daily bars inside [from, to] to the
// handler in timestamp order.
func (r *Reader) LoadBars(ctx context.Context, symbol string, from, to time.Time, handler func(bar common.Bar) error) error {

	query := fmt.Sprintf(`SELECT ts, open, high, low, close, volume FROM %s_bars WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}(rows)

	for rows.Next() {
		var (
			timeStamp                      time.Time
			open, high, low, close, volume float64
		)
		if err := rows.Scan(&timeStamp, &open, &high, &low, &close, &volume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}

		bar := common.Bar{
			Symbol:    symbol,
			Period:    common.BarPeriodD1,
			Open:      fixed.FromFloat64(open),
			High:      fixed.FromFloat64(high),
			Low:       fixed.FromFloat64(low),
			Close:     fixed.FromFloat64(close),
			Volume:    fixed.FromFloat64(volume),
			TimeStamp: timeStamp,
		}
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
