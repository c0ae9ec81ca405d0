package membership

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "wanderlist/pkg/domain"
)

// PostgresStore persists membership edges in the user_objectives table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, m Membership) error {
	query := `
		INSERT INTO user_objectives (user_id, objective_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, objective_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(m.UserID), uuid.UUID(m.ObjectiveID), m.AddedAt)
	if err != nil {
		return fmt.Errorf("add membership: %w", err)
	}
	return nil
}

func (s *PostgresStore) Exists(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_objectives
			WHERE user_id = $1 AND objective_id = $2
		)
	`
	var exists bool
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID), uuid.UUID(objectiveID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	query := `
		DELETE FROM user_objectives
		WHERE user_id = $1 AND objective_id = $2
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(userID), uuid.UUID(objectiveID))
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Membership, error) {
	query := `
		SELECT user_id, objective_id, added_at
		FROM user_objectives
		WHERE user_id = $1
		ORDER BY added_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []Membership
	for rows.Next() {
		var rawUserID, rawObjectiveID uuid.UUID
		var m Membership
		if err := rows.Scan(&rawUserID, &rawObjectiveID, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.UserID = id.UserID(rawUserID)
		m.ObjectiveID = id.ObjectiveID(rawObjectiveID)
		out = append(out, m)
	}
	return out, rows.Err()
}
