package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "wanderlist/pkg/domain"
)

// PostgresStore persists visits in the user_progress table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Mark(ctx context.Context, userID id.UserID, itemID id.ItemID, visitedAt time.Time) error {
	query := `
		INSERT INTO user_progress (user_id, item_id, visited_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), uuid.UUID(itemID), visitedAt)
	if err != nil {
		return fmt.Errorf("mark item visited: %w", err)
	}
	return nil
}

func (s *PostgresStore) Unmark(ctx context.Context, userID id.UserID, itemID id.ItemID) error {
	query := `
		DELETE FROM user_progress
		WHERE user_id = $1 AND item_id = $2
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), uuid.UUID(itemID))
	if err != nil {
		return fmt.Errorf("unmark item: %w", err)
	}
	return nil
}

func (s *PostgresStore) VisitedSet(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) (map[id.ItemID]time.Time, error) {
	if len(itemIDs) == 0 {
		return map[id.ItemID]time.Time{}, nil
	}
	query := `
		SELECT item_id, visited_at
		FROM user_progress
		WHERE user_id = $1 AND item_id = ANY($2)
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID), pq.Array(rawItemIDs(itemIDs)))
	if err != nil {
		return nil, fmt.Errorf("load visited set: %w", err)
	}
	defer rows.Close()

	out := make(map[id.ItemID]time.Time, len(itemIDs))
	for rows.Next() {
		var itemID uuid.UUID
		var visitedAt time.Time
		if err := rows.Scan(&itemID, &visitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out[id.ItemID(itemID)] = visitedAt
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountVisited(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) (int, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	query := `
		SELECT COUNT(*)
		FROM user_progress
		WHERE user_id = $1 AND item_id = ANY($2)
	`
	var count int
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID), pq.Array(rawItemIDs(itemIDs))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count visited: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListVisited(ctx context.Context, userID id.UserID) ([]Visit, error) {
	query := `
		SELECT user_id, item_id, visited_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY visited_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var rawUserID, rawItemID uuid.UUID
		var visit Visit
		if err := rows.Scan(&rawUserID, &rawItemID, &visit.VisitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visit.UserID = id.UserID(rawUserID)
		visit.ItemID = id.ItemID(rawItemID)
		out = append(out, visit)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UnmarkAllForItems(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := `
		DELETE FROM user_progress
		WHERE user_id = $1 AND item_id = ANY($2)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), pq.Array(rawItemIDs(itemIDs)))
	if err != nil {
		return fmt.Errorf("unmark items: %w", err)
	}
	return nil
}

func rawItemIDs(itemIDs []id.ItemID) []uuid.UUID {
	raw := make([]uuid.UUID, len(itemIDs))
	for i, itemID := range itemIDs {
		raw[i] = uuid.UUID(itemID)
	}
	return raw
}
