package social

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "wanderlist/pkg/domain"
)

// PostgresStore persists follow edges in the follows table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, follow Follow) error {
	query := `
		INSERT INTO follows (id, follower_id, followed_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(follow.ID), uuid.UUID(follow.FollowerID), uuid.UUID(follow.FollowedID), follow.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, followerID, followedID id.UserID) (Follow, error) {
	query := `
		SELECT id, follower_id, followed_id, created_at
		FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, uuid.UUID(followerID), uuid.UUID(followedID)))
}

func (s *PostgresStore) Delete(ctx context.Context, followID id.FollowID) error {
	query := `DELETE FROM follows WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(followID))
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountFollowers(ctx context.Context, userID id.UserID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
}

func (s *PostgresStore) CountFollowing(ctx context.Context, userID id.UserID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
}

func (s *PostgresStore) ListFollowers(ctx context.Context, userID id.UserID) ([]Follow, error) {
	query := `
		SELECT id, follower_id, followed_id, created_at
		FROM follows
		WHERE followed_id = $1
		ORDER BY created_at
	`
	return s.list(ctx, query, userID)
}

func (s *PostgresStore) ListFollowing(ctx context.Context, userID id.UserID) ([]Follow, error) {
	query := `
		SELECT id, follower_id, followed_id, created_at
		FROM follows
		WHERE follower_id = $1
		ORDER BY created_at
	`
	return s.list(ctx, query, userID)
}

func (s *PostgresStore) count(ctx context.Context, query string, userID id.UserID) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, uuid.UUID(userID)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count follows: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, userID id.UserID) ([]Follow, error) {
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var out []Follow
	for rows.Next() {
		follow, err := scanFollow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, follow)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row rowScanner) (Follow, error) {
	follow, err := scanFollow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Follow{}, ErrNotFound
	}
	return follow, err
}

func scanFollow(row rowScanner) (Follow, error) {
	var rawID, rawFollower, rawFollowed uuid.UUID
	var follow Follow
	err := row.Scan(&rawID, &rawFollower, &rawFollowed, &follow.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Follow{}, err
		}
		return Follow{}, fmt.Errorf("scan follow: %w", err)
	}
	follow.ID = id.FollowID(rawID)
	follow.FollowerID = id.UserID(rawFollower)
	follow.FollowedID = id.UserID(rawFollowed)
	return follow, nil
}
