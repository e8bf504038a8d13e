// Package entity defines the stored-record shape for the games feature.
package entity

import "games_backend/internal/platform/storage"

// Game is the canonical stored record for a game. The backend assigns ID at
// creation; the (Title, Year, Developer) triple is the uniqueness key
// enforced by the usecase layer.
type Game struct {
	// ID is the opaque identifier assigned by the storage backend.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Title string `gorm:"size:50" json:"title"`

	// Year is the release year, 1958 or later.
	Year int `json:"year"`

	Genre     string `gorm:"size:50" json:"genre"`
	Developer string `gorm:"size:50" json:"developer"`
	Publisher string `gorm:"size:50" json:"publisher"`

	// Platforms is stored as a JSON-serialized ordered list.
	Platforms []string `gorm:"serializer:json" json:"platforms"`

	DigitalDistribution string `gorm:"size:50;column:digital_distribution" json:"digital_distribution"`
}

// TableName sets the gorm table for Game records.
func (Game) TableName() string { return "games" }

// GetID returns the record identifier.
func (g *Game) GetID() string { return g.ID }

// SetID assigns the record identifier.
func (g *Game) SetID(id string) { g.ID = id }

// Merge applies a partial field set onto the record. Field names follow the
// payload contract; unknown entries are ignored and ID is never touched.
func (g *Game) Merge(fields storage.Fields) {
	if v, ok := fields["title"].(string); ok {
		g.Title = v
	}
	if v, ok := fields["year"].(int); ok {
		g.Year = v
	}
	if v, ok := fields["genre"].(string); ok {
		g.Genre = v
	}
	if v, ok := fields["developer"].(string); ok {
		g.Developer = v
	}
	if v, ok := fields["publisher"].(string); ok {
		g.Publisher = v
	}
	if v, ok := fields["platforms"].([]string); ok {
		g.Platforms = v
	}
	if v, ok := fields["digital_distribution"].(string); ok {
		g.DigitalDistribution = v
	}
}
