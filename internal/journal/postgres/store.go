package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"swampwatch/internal/model"
)

// Store provides Postgres persistence for alert history. It is an audit
// trail only; the watcher never reads it back to resume.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, timeout: 5 * time.Second}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Append inserts one alert record. (tx_hash, log_index) is the natural key;
// a replayed range after a failed tick upserts instead of duplicating.
func (s *Store) Append(rec model.AlertRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alerts (
			block_number, tx_hash, log_index, buyer, buyer_resolved, recipient,
			tracked_raw, counter_raw, tracked_human, counter_human, tier,
			delivered, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (tx_hash, log_index)
		DO UPDATE SET
			delivered = alerts.delivered OR EXCLUDED.delivered,
			buyer = EXCLUDED.buyer,
			buyer_resolved = EXCLUDED.buyer_resolved
	`,
		int64(rec.BlockNumber),
		rec.TxHash,
		int64(rec.LogIndex),
		rec.Buyer,
		rec.BuyerResolved,
		rec.Recipient,
		rec.TrackedRaw,
		rec.CounterRaw,
		rec.TrackedHuman,
		rec.CounterHuman,
		rec.Tier,
		rec.Delivered,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}
