package history

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/CasinoHe/quanttrader-sub001/internal/types"
)

var _ TradeLog = (*DuckDBTradeLog)(nil)

// DuckDBTradeLog persists trades in a DuckDB database, either on disk or in
// memory. It survives process restarts with a disk path and supports the
// same filtered queries as the in-memory log.
type DuckDBTradeLog struct {
	db *sql.DB
	sq squirrel.StatementBuilderType
}

// NewDuckDBTradeLog opens (or creates) the trade database at path. An empty
// path opens an in-memory database.
func NewDuckDBTradeLog(path string) (*DuckDBTradeLog, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade database: %w", err)
	}

	log := &DuckDBTradeLog{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := log.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return log, nil
}

func (d *DuckDBTradeLog) initialize() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			exec_id TEXT PRIMARY KEY,
			order_id BIGINT,
			symbol TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			timestamp TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	return nil
}

// Append records one trade.
func (d *DuckDBTradeLog) Append(trade types.Trade) error {
	_, err := d.sq.
		Insert("trades").
		Columns("exec_id", "order_id", "symbol", "side", "quantity", "price", "timestamp").
		Values(
			trade.ExecID,
			trade.OrderID,
			trade.Symbol,
			string(trade.Side),
			trade.Quantity,
			trade.Price,
			trade.Timestamp,
		).
		RunWith(d.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// Query returns matching trades ordered by execution time.
func (d *DuckDBTradeLog) Query(filter types.TradeFilter) ([]types.Trade, error) {
	selectQuery := d.sq.
		Select("exec_id", "order_id", "symbol", "side", "quantity", "price", "timestamp").
		From("trades").
		OrderBy("timestamp ASC")

	if filter.Symbol != "" {
		selectQuery = selectQuery.Where(squirrel.Eq{"symbol": filter.Symbol})
	}

	if !filter.StartTime.IsZero() {
		selectQuery = selectQuery.Where(squirrel.GtOrEq{"timestamp": filter.StartTime})
	}

	if !filter.EndTime.IsZero() {
		selectQuery = selectQuery.Where(squirrel.LtOrEq{"timestamp": filter.EndTime})
	}

	if filter.Limit > 0 {
		selectQuery = selectQuery.Limit(uint64(filter.Limit))
	}

	rows, err := selectQuery.RunWith(d.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]types.Trade, 0)

	for rows.Next() {
		var trade types.Trade

		var side string

		err := rows.Scan(
			&trade.ExecID,
			&trade.OrderID,
			&trade.Symbol,
			&side,
			&trade.Quantity,
			&trade.Price,
			&trade.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		trade.Side = types.OrderSide(side)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trades: %w", err)
	}

	return trades, nil
}

// Reset drops every recorded trade.
func (d *DuckDBTradeLog) Reset() error {
	if _, err := d.db.Exec(`DELETE FROM trades`); err != nil {
		return fmt.Errorf("failed to reset trades: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (d *DuckDBTradeLog) Close() error {
	return d.db.Close()
}
