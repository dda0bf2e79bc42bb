package store

import (
	"context"
	"fmt"
	"time"
)

// DealRepository records processed deals for audit. Implementations must be
// safe for concurrent use.
type DealRepository interface {
	SaveProcessedDeal(ctx context.Context, id, dealName string, request, result []byte) error
}

// DealRepo is the Postgres-backed repository.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS processed_deals (
//	  id TEXT PRIMARY KEY,
//	  deal_name TEXT,
//	  request_json JSONB,
//	  result_json JSONB,
//	  processed_at TIMESTAMPTZ
//	);
type DealRepo struct{}

// NewDealRepo creates a new repository instance.
func NewDealRepo() *DealRepo {
	return &DealRepo{}
}

// SaveProcessedDeal inserts one audit record. Replays of the same request id
// are idempotent.
func (r *DealRepo) SaveProcessedDeal(ctx context.Context, id, dealName string, request, result []byte) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO processed_deals (id, deal_name, request_json, result_json, processed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING;
	`

	if _, err := pool.Exec(ctx, query, id, dealName, request, result, time.Now()); err != nil {
		return fmt.Errorf("failed to save processed deal: %w", err)
	}
	return nil
}
