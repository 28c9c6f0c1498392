package models

import "time"

// Performer is identified by its name, like Station.
type Performer struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}
