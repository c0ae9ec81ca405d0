// Package catalog holds the read-only reference data: objectives, their
// items, and categories. The engine never mutates this data; it only reads
// it to resolve names, coordinates, and total item counts.
package catalog

import (
	id "wanderlist/pkg/domain"
)

// Objective is a named collection of places a user can track visiting
// progress against. TotalItems always equals the count of the objective's
// items; stores derive it rather than trusting a stored column, so the
// completion rule's denominator matches what the API reports.
type Objective struct {
	ID          id.ObjectiveID
	Title       string
	Description string
	ImageURL    string
	TotalItems  int
	CategoryID  id.CategoryID
}

// Item is a single place belonging to exactly one objective.
type Item struct {
	ID          id.ItemID
	ObjectiveID id.ObjectiveID
	Name        string
	Latitude    float64
	Longitude   float64
	OrderIndex  int
}

// Category groups objectives in the explore view.
type Category struct {
	ID   id.CategoryID
	Name string
	Slug string
	Icon string
}

// Filter narrows objective listings.
type Filter struct {
	// Search matches objective titles case-insensitively.
	Search string
	// CategoryID restricts to one category when non-nil.
	CategoryID id.CategoryID
}
