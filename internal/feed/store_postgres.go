package feed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "wanderlist/pkg/domain"
)

// PostgresStore persists feed entries in the activity_feed table.
// Pure I/O; the synchronizer owns the derivation rules.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO activity_feed (id, user_id, activity_type, objective_id, objective_title, item_id, item_name, follow_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(entry.ID),
		uuid.UUID(entry.UserID),
		string(entry.Kind),
		nullableUUID(uuid.UUID(entry.ObjectiveID)),
		entry.ObjectiveTitle,
		nullableUUID(uuid.UUID(entry.ItemID)),
		entry.ItemName,
		nullableUUID(uuid.UUID(entry.FollowID)),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feed entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteVisited(ctx context.Context, userID id.UserID, itemID id.ItemID) error {
	query := `
		DELETE FROM activity_feed
		WHERE user_id = $1 AND activity_type = $2 AND item_id = $3
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), string(KindVisitedPlace), uuid.UUID(itemID))
	if err != nil {
		return fmt.Errorf("delete visited entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCompleted(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	query := `
		DELETE FROM activity_feed
		WHERE user_id = $1 AND activity_type = $2 AND objective_id = $3
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), string(KindCompletedObjective), uuid.UUID(objectiveID))
	if err != nil {
		return fmt.Errorf("delete completed entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteForObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	query := `
		DELETE FROM activity_feed
		WHERE user_id = $1 AND objective_id = $2 AND activity_type IN ($3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), uuid.UUID(objectiveID),
		string(KindVisitedPlace), string(KindCompletedObjective))
	if err != nil {
		return fmt.Errorf("delete objective entries: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteForFollow(ctx context.Context, followID id.FollowID) error {
	query := `
		DELETE FROM activity_feed
		WHERE activity_type = $1 AND follow_id = $2
	`
	_, err := s.db.ExecContext(ctx, query, string(KindNewFollower), uuid.UUID(followID))
	if err != nil {
		return fmt.Errorf("delete follower entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) HasCompleted(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM activity_feed
			WHERE user_id = $1 AND activity_type = $2 AND objective_id = $3
		)
	`
	var exists bool
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID), string(KindCompletedObjective), uuid.UUID(objectiveID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completed entry: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Entry, error) {
	query := `
		SELECT id, user_id, activity_type, objective_id, objective_title, item_id, item_name, follow_id, created_at
		FROM activity_feed
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("list feed entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var rawID, rawUserID uuid.UUID
		var kind string
		var objectiveID, itemID, followID uuid.NullUUID
		var objectiveTitle, itemName sql.NullString
		err := rows.Scan(&rawID, &rawUserID, &kind, &objectiveID, &objectiveTitle,
			&itemID, &itemName, &followID, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan feed entry: %w", err)
		}
		entry.ID = id.EntryID(rawID)
		entry.UserID = id.UserID(rawUserID)
		entry.Kind = Kind(kind)
		entry.ObjectiveID = id.ObjectiveID(objectiveID.UUID)
		entry.ObjectiveTitle = objectiveTitle.String
		entry.ItemID = id.ItemID(itemID.UUID)
		entry.ItemName = itemName.String
		entry.FollowID = id.FollowID(followID.UUID)
		out = append(out, entry)
	}
	return out, rows.Err()
}

// nullableUUID maps the nil UUID to SQL NULL so optional references stay
// queryable with IS NULL.
func nullableUUID(u uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: u, Valid: u != uuid.Nil}
}
