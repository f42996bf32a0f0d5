package entity

import "time"

// Migration is the single-row format-version tag of the persisted schema.
// migration.Migrate branches on Version explicitly instead of inspecting
// loaded data shapes.
type Migration struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt time.Time
}
