package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
)

type PriceRepository struct {
	pool *pgxpool.Pool
}

func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{
		pool: pool,
	}
}

// SaveBatch bulk-inserts every record of the uploaded symbol batches
// with a single COPY. When PreventDuplicates is set, a dedup pass
// scoped to the uploaded symbols runs right after the copy, so
// re-uploading the same files leaves no duplicate rows behind.
func (r *PriceRepository) SaveBatch(ctx context.Context, stocks []prices.SymbolBatch, opts prices.SaveOptions) (int, int64, error) {
	if len(stocks) == 0 {
		return 0, 0, nil
	}

	tableName := "historical_prices"
	columns := []string{
		"symbol",
		"date",
		"open",
		"high",
		"low",
		"close",
		"volume",
		"folder_name",
		"created_at",
	}

	now := time.Now()
	symbols := make([]string, 0, len(stocks))
	seen := make(map[string]struct{}, len(stocks))

	var rows [][]interface{}
	for _, stock := range stocks {
		symbol := stock.Symbol
		if opts.ConvertToUppercase {
			symbol = strings.ToUpper(symbol)
		}
		if _, ok := seen[symbol]; !ok && len(stock.Records) > 0 {
			seen[symbol] = struct{}{}
			symbols = append(symbols, symbol)
		}

		for _, rec := range stock.Records {
			date, err := time.Parse("2006-01-02", rec.Date)
			if err != nil {
				continue
			}
			rows = append(rows, []interface{}{
				symbol,
				date,
				rec.Open,
				rec.High,
				rec.Low,
				rec.Close,
				rec.Volume,
				opts.FolderName,
				now,
			})
		}
	}

	if len(rows) == 0 {
		return 0, 0, nil
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("pool error: %w", err)
	}
	defer conn.Release()

	count, err := conn.Conn().CopyFrom(
		ctx,
		pgx.Identifier{tableName},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, 0, fmt.Errorf("sql copy error: %w", err)
	}

	if opts.PreventDuplicates {
		if _, err := r.DeduplicateSymbols(ctx, symbols); err != nil {
			return len(symbols), count, fmt.Errorf("scoped dedup error: %w", err)
		}
	}

	return len(symbols), count, nil
}

// Deduplicate removes duplicate (symbol, date) rows across the whole
// table, keeping the oldest row of each pair.
func (r *PriceRepository) Deduplicate(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM historical_prices a
		USING historical_prices b
		WHERE a.symbol = b.symbol
			AND a.date = b.date
			AND a.id > b.id;
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("dedup query error: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeduplicateSymbols runs the same pass scoped to the given symbols.
func (r *PriceRepository) DeduplicateSymbols(ctx context.Context, symbols []string) (int64, error) {
	if len(symbols) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM historical_prices a
		USING historical_prices b
		WHERE a.symbol = b.symbol
			AND a.date = b.date
			AND a.id > b.id
			AND a.symbol = ANY($1);
	`

	tag, err := r.pool.Exec(ctx, query, symbols)
	if err != nil {
		return 0, fmt.Errorf("scoped dedup query error: %w", err)
	}

	return tag.RowsAffected(), nil
}
