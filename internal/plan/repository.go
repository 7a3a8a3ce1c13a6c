package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrPlanNotFound is returned when a saved plan id does not exist.
var ErrPlanNotFound = errors.New("plan: plan not found")

// SavedPlan is a plan snapshot kept for the quote flow: the normalized
// draft it was built from, the derived plan, and the layout it was
// attached to, if any.
type SavedPlan struct {
	ID        string         `json:"id"`
	LayoutID  *string        `json:"layout_id,omitempty"`
	Tier      Tier           `json:"tier"`
	Status    CoverageStatus `json:"status"`
	Draft     Draft          `json:"draft"`
	Plan      Plan           `json:"plan"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store persists plan snapshots.
type Store interface {
	SavePlan(ctx context.Context, p *SavedPlan) error
	GetPlan(ctx context.Context, id string) (*SavedPlan, error)
	ListPlans(ctx context.Context, layoutID string) ([]SavedPlan, error)
}

// SQLiteStore is the SQLite-backed Store. Draft and plan are stored as
// JSON documents; snapshots are immutable once written.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store backed by an existing database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SavePlan writes one snapshot. The caller supplies the id; CreatedAt is
// stamped here when zero.
func (s *SQLiteStore) SavePlan(ctx context.Context, p *SavedPlan) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	draftJSON, err := json.Marshal(p.Draft)
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}
	planJSON, err := json.Marshal(p.Plan)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}

	const query = `
		INSERT INTO plans (id, layout_id, tier, status, draft, plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		p.ID, nullStr(p.LayoutID), string(p.Tier), string(p.Status),
		string(draftJSON), string(planJSON), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// GetPlan loads one snapshot by id.
func (s *SQLiteStore) GetPlan(ctx context.Context, id string) (*SavedPlan, error) {
	const query = `
		SELECT id, layout_id, tier, status, draft, plan, created_at
		FROM plans WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	p, err := scanPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	return p, nil
}

// ListPlans returns snapshots newest first, optionally filtered to one
// layout. An empty layoutID lists everything.
func (s *SQLiteStore) ListPlans(ctx context.Context, layoutID string) ([]SavedPlan, error) {
	query := `
		SELECT id, layout_id, tier, status, draft, plan, created_at
		FROM plans`
	args := []any{}
	if layoutID != "" {
		query += " WHERE layout_id = ?"
		args = append(args, layoutID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []SavedPlan
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func scanPlan(scan func(dest ...any) error) (*SavedPlan, error) {
	var (
		p         SavedPlan
		layoutID  sql.NullString
		tier      string
		status    string
		draftJSON string
		planJSON  string
		createdAt string
	)
	if err := scan(&p.ID, &layoutID, &tier, &status, &draftJSON, &planJSON, &createdAt); err != nil {
		return nil, err
	}
	if layoutID.Valid {
		p.LayoutID = &layoutID.String
	}
	p.Tier = Tier(tier)
	p.Status = CoverageStatus(status)
	if err := json.Unmarshal([]byte(draftJSON), &p.Draft); err != nil {
		return nil, fmt.Errorf("unmarshaling draft: %w", err)
	}
	if err := json.Unmarshal([]byte(planJSON), &p.Plan); err != nil {
		return nil, fmt.Errorf("unmarshaling plan: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.CreatedAt = ts
	return &p, nil
}

func nullStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
