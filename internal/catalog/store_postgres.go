package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/google/uuid"

	id "wanderlist/pkg/domain"
)

// PostgresStore reads the catalog tables. Pure I/O; no business rules.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetObjective(ctx context.Context, objectiveID id.ObjectiveID) (Objective, error) {
	query := `
		SELECT o.id, o.title, o.description, o.image_url,
		       (SELECT COUNT(*) FROM objective_items i WHERE i.objective_id = o.id),
		       o.category_id
		FROM objectives o
		WHERE o.id = $1
	`
	objective, err := scanObjective(s.db.QueryRowContext(ctx, query, uuid.UUID(objectiveID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Objective{}, ErrNotFound
		}
		return Objective{}, fmt.Errorf("get objective: %w", err)
	}
	return objective, nil
}

func (s *PostgresStore) ListObjectives(ctx context.Context, filter Filter) ([]Objective, error) {
	query := `
		SELECT o.id, o.title, o.description, o.image_url,
		       (SELECT COUNT(*) FROM objective_items i WHERE i.objective_id = o.id),
		       o.category_id
		FROM objectives o
		WHERE ($1 = '' OR o.title ILIKE '%' || $1 || '%')
		  AND ($2::uuid IS NULL OR o.category_id = $2)
		ORDER BY o.title
	`
	var categoryID interface{}
	if !filter.CategoryID.IsNil() {
		categoryID = uuid.UUID(filter.CategoryID)
	}
	rows, err := s.db.QueryContext(ctx, query, filter.Search, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	defer rows.Close()

	var out []Objective
	for rows.Next() {
		objective, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		out = append(out, objective)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetItem(ctx context.Context, itemID id.ItemID) (Item, error) {
	query := `
		SELECT id, objective_id, name, latitude, longitude, order_index
		FROM objective_items
		WHERE id = $1
	`
	item, err := scanItem(s.db.QueryRowContext(ctx, query, uuid.UUID(itemID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, objectiveID id.ObjectiveID) ([]Item, error) {
	query := `
		SELECT id, objective_id, name, latitude, longitude, order_index
		FROM objective_items
		WHERE objective_id = $1
		ORDER BY order_index
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(objectiveID))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *PostgresStore) ListItemsByIDs(ctx context.Context, itemIDs []id.ItemID) ([]Item, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	raw := make([]uuid.UUID, len(itemIDs))
	for i, itemID := range itemIDs {
		raw[i] = uuid.UUID(itemID)
	}
	query := `
		SELECT id, objective_id, name, latitude, longitude, order_index
		FROM objective_items
		WHERE id = ANY($1)
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("list items by ids: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, slug, icon FROM categories ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var category Category
		var rawID uuid.UUID
		if err := rows.Scan(&rawID, &category.Name, &category.Slug, &category.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		category.ID = id.CategoryID(rawID)
		out = append(out, category)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObjective(row rowScanner) (Objective, error) {
	var objective Objective
	var rawID uuid.UUID
	var rawCategoryID uuid.NullUUID
	err := row.Scan(&rawID, &objective.Title, &objective.Description,
		&objective.ImageURL, &objective.TotalItems, &rawCategoryID)
	if err != nil {
		return Objective{}, err
	}
	objective.ID = id.ObjectiveID(rawID)
	if rawCategoryID.Valid {
		objective.CategoryID = id.CategoryID(rawCategoryID.UUID)
	}
	return objective, nil
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	var rawID, rawObjectiveID uuid.UUID
	err := row.Scan(&rawID, &rawObjectiveID, &item.Name,
		&item.Latitude, &item.Longitude, &item.OrderIndex)
	if err != nil {
		return Item{}, err
	}
	item.ID = id.ItemID(rawID)
	item.ObjectiveID = id.ObjectiveID(rawObjectiveID)
	return item, nil
}

func collectItems(rows *sql.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
