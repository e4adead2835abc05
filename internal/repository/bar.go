package repository

import (
	"context"
	"time"

	"backsim/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type barStore interface {
	queryBars(ctx context.Context, ticker string, start, end time.Time) ([]types.Bar, error)
}

// GetBars loads the one-minute bar series for a ticker over [start, end).
func (db *Database) GetBars(ticker string, start, end time.Time, ctx context.Context) ([]types.Bar, error) {
	bars, err := db.bars.queryBars(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	return bars, nil
}

type pgxBarStore struct {
	pool *pgxpool.Pool
}

const queryBarsSQL = `
SELECT timestamp, open, high, low, close, volume, bid, ask
FROM bars
WHERE ticker = $1 AND timestamp >= $2 AND timestamp < $3
ORDER BY timestamp`

func (s *pgxBarStore) queryBars(ctx context.Context, ticker string, start, end time.Time) ([]types.Bar, error) {
	rows, err := s.pool.Query(ctx, queryBarsSQL, ticker, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []types.Bar
	for rows.Next() {
		var b types.Bar
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Bid, &b.Ask); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNoBars
		}
		return nil, err
	}
	return bars, nil
}
