package models

import "time"

// Station is a broadcaster ("channel" on the wire). Name is the identity key
// and is matched exactly, case included.
type Station struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}
