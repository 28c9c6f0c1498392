package models

import "time"

// Song is unique on (title, performer). Two performers may share a title and
// still be distinct songs.
type Song struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Title       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_song_identity;index" json:"title"`
	PerformerID uint      `gorm:"not null;uniqueIndex:idx_song_identity" json:"-"`
	Performer   Performer `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// PerformerName returns the preloaded performer's name.
func (s Song) PerformerName() string {
	return s.Performer.Name
}
