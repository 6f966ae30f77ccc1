// Package models defines the data structures that map to database tables.
// Each struct is both a row of its table and the JSON shape accepted and returned
// over HTTP, so the struct tags carry both the column name (gorm) and the JSON key.
//
// The data model is a simple climbing logbook:
//   - a Crag is a named climbing location
//   - a Route is a named line at exactly one Crag
//   - an Ascent records that a Route was climbed on a given date
//
// References (Route.CragID, Ascent.RouteID) are not checked by the application;
// the database schema owns referential integrity.
package models

import (
	// uuid provides the primary keys. IDs are generated server-side as UUIDv7,
	// which embeds a millisecond timestamp so later rows sort after earlier ones.
	"github.com/google/uuid"
)

// Entity is implemented by every table-backed model. It gives the generic
// storage and handler code what it needs without reflection:
//   - TableName: the table the rows live in (also what GORM uses for Find)
//   - Columns:   every column, "id" first, then declaration order
//   - Values:    the non-id values, in the same order as Columns()[1:]
//
// Column names double as JSON keys.
type Entity interface {
	TableName() string
	Columns() []string
	Values() []any
}

// --- Crag ---

// Crag is a named climbing location. Root of the hierarchy; no foreign keys.
type Crag struct {
	ID       uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `json:"name" gorm:"column:name;not null"`
	Location string    `json:"location" gorm:"column:location;not null"`
}

// TableName is the table Crag rows live in.
func (Crag) TableName() string { return "crag" }

// Columns lists id, name, location.
func (Crag) Columns() []string { return []string{"id", "name", "location"} }

// Values returns name, location, in column order.
func (c Crag) Values() []any { return []any{c.Name, c.Location} }

// --- Route ---

// Route is a named climbing path at a specific crag.
type Route struct {
	ID     uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	CragID uuid.UUID `json:"crag_id" gorm:"column:crag_id;type:uuid;not null"`
	Name   string    `json:"name" gorm:"column:name;not null"`
}

// TableName is the table Route rows live in.
func (Route) TableName() string { return "route" }

// Columns lists id, crag_id, name.
func (Route) Columns() []string { return []string{"id", "crag_id", "name"} }

// Values returns crag_id, name, in column order.
func (r Route) Values() []any { return []any{r.CragID, r.Name} }

// --- Ascent ---

// Ascent records that a route was climbed on a specific calendar date.
type Ascent struct {
	ID      uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	RouteID uuid.UUID `json:"route_id" gorm:"column:route_id;type:uuid;not null"`
	Date    Date      `json:"date" gorm:"column:date;type:date;not null"`
}

// TableName is the table Ascent rows live in.
func (Ascent) TableName() string { return "ascent" }

// Columns lists id, route_id, date.
func (Ascent) Columns() []string { return []string{"id", "route_id", "date"} }

// Values returns route_id, date, in column order.
func (a Ascent) Values() []any { return []any{a.RouteID, a.Date} }
