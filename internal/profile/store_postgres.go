package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "wanderlist/pkg/domain"
)

// PostgresStore persists profiles in the profiles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID id.UserID) (Profile, error) {
	query := `
		SELECT user_id, username, full_name, bio, city, avatar_key, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Create(ctx context.Context, p Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, full_name, bio, city, avatar_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.UserID), p.Username, p.FullName, p.Bio, p.City, p.AvatarKey, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p Profile) error {
	query := `
		UPDATE profiles
		SET username = $2, full_name = $3, bio = $4, city = $5, avatar_key = $6, updated_at = $7
		WHERE user_id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.UserID), p.Username, p.FullName, p.Bio, p.City, p.AvatarKey, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, query string, limit int) ([]Profile, error) {
	stmt := `
		SELECT user_id, username, full_name, bio, city, avatar_key, created_at, updated_at
		FROM profiles
		WHERE username ILIKE $1 OR full_name ILIKE $1
		ORDER BY username
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, stmt, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var rawUserID uuid.UUID
	var p Profile
	err := row.Scan(&rawUserID, &p.Username, &p.FullName, &p.Bio, &p.City, &p.AvatarKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	p.UserID = id.UserID(rawUserID)
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
