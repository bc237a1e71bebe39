package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lifelink/pkg/domain"
)

// PostgresStore persists donor history in Postgres for deployments that
// need the record to survive restarts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the history table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS donor_history (
			id UUID PRIMARY KEY,
			donor_id UUID NOT NULL,
			request_id UUID NOT NULL,
			kind TEXT NOT NULL,
			hospital_name TEXT NOT NULL,
			blood_group TEXT NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS donor_history_donor_idx
			ON donor_history (donor_id, occurred_at DESC);
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO donor_history (id, donor_id, request_id, kind, hospital_name, blood_group, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		entry.ID,
		uuid.UUID(entry.DonorID),
		uuid.UUID(entry.RequestID),
		string(entry.Kind),
		entry.HospitalName,
		string(entry.BloodGroup),
		entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID domain.UserID) ([]*Entry, error) {
	query := `
		SELECT id, donor_id, request_id, kind, hospital_name, blood_group, occurred_at
		FROM donor_history
		WHERE donor_id = $1
		ORDER BY occurred_at DESC
	`
	rows, err := s.pool.Query(ctx, query, uuid.UUID(donorID))
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var entry Entry
		var did, rid uuid.UUID
		var kind, bloodGroup string
		if err := rows.Scan(&entry.ID, &did, &rid, &kind, &entry.HospitalName, &bloodGroup, &entry.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.DonorID = domain.UserID(did)
		entry.RequestID = domain.RequestID(rid)
		entry.Kind = Kind(kind)
		entry.BloodGroup = domain.BloodGroup(bloodGroup)
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}
