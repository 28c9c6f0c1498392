package models

import "time"

// Play records one broadcast of a Song on a Station over [Start, End).
// A station cannot start the same song twice at the same instant.
type Play struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SongID    uint      `gorm:"not null;uniqueIndex:idx_play_identity" json:"-"`
	Song      Song      `json:"-"`
	StationID uint      `gorm:"not null;uniqueIndex:idx_play_identity;index" json:"-"`
	Station   Station   `json:"-"`
	Start     time.Time `gorm:"column:started_at;not null;uniqueIndex:idx_play_identity;index" json:"start"`
	End       time.Time `gorm:"column:ended_at;not null;index" json:"end"`
	CreatedAt time.Time `json:"-"`
}

// PlayFilter selects plays lying entirely inside [Start, End).
//
// Stations == nil places no restriction on the station; a non-nil empty slice
// matches nothing. Title and Performer are exact matches and are ignored when
// empty.
type PlayFilter struct {
	Start     time.Time
	End       time.Time
	Stations  []string
	Title     string
	Performer string
}
