package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"radio-charts/internal/models"
)

// insertIfAbsent inserts row unless another row already holds the same
// values in the conflict columns. It never fails on a duplicate identity key,
// which is what makes concurrent get-or-create converge on a single row.
func (c *Client) insertIfAbsent(ctx context.Context, row interface{}, conflict ...string) error {
	cols := make([]clause.Column, 0, len(conflict))
	for _, name := range conflict {
		cols = append(cols, clause.Column{Name: name})
	}
	return c.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).
		Create(row).Error
}

// first loads a single row and maps a missing row to models.ErrNotFound.
func first(q *gorm.DB, dest interface{}, op, what string) error {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return models.NewStorageError(op, err)
}

func (c *Client) GetOrCreateStation(ctx context.Context, name string) (*models.Station, error) {
	if name == "" {
		return nil, fmt.Errorf("station name is required: %w", models.ErrInvalidInput)
	}

	station := models.Station{Name: name}
	if err := c.insertIfAbsent(ctx, &station, "name"); err != nil {
		return nil, models.NewStorageError("create station", err)
	}
	if station.ID != 0 {
		return &station, nil
	}
	return c.FindStation(ctx, name)
}

func (c *Client) FindStation(ctx context.Context, name string) (*models.Station, error) {
	var station models.Station
	q := c.DB.WithContext(ctx).Where("name = ?", name)
	if err := first(q, &station, "find station", fmt.Sprintf("station %q", name)); err != nil {
		return nil, err
	}
	return &station, nil
}

func (c *Client) GetOrCreatePerformer(ctx context.Context, name string) (*models.Performer, error) {
	if name == "" {
		return nil, fmt.Errorf("performer name is required: %w", models.ErrInvalidInput)
	}

	performer := models.Performer{Name: name}
	if err := c.insertIfAbsent(ctx, &performer, "name"); err != nil {
		return nil, models.NewStorageError("create performer", err)
	}
	if performer.ID != 0 {
		return &performer, nil
	}
	return c.FindPerformer(ctx, name)
}

func (c *Client) FindPerformer(ctx context.Context, name string) (*models.Performer, error) {
	var performer models.Performer
	q := c.DB.WithContext(ctx).Where("name = ?", name)
	if err := first(q, &performer, "find performer", fmt.Sprintf("performer %q", name)); err != nil {
		return nil, err
	}
	return &performer, nil
}

// GetOrCreateSong returns the song (title, performer), creating it if needed.
// The performer must already be stored.
func (c *Client) GetOrCreateSong(ctx context.Context, title string, performer *models.Performer) (*models.Song, error) {
	if title == "" {
		return nil, fmt.Errorf("song title is required: %w", models.ErrInvalidInput)
	}
	if performer == nil || performer.ID == 0 {
		return nil, fmt.Errorf("song %q has no stored performer: %w", title, models.ErrInvalidInput)
	}

	song := models.Song{Title: title, PerformerID: performer.ID}
	if err := c.insertIfAbsent(ctx, &song, "title", "performer_id"); err != nil {
		return nil, models.NewStorageError("create song", err)
	}
	if song.ID == 0 {
		q := c.DB.WithContext(ctx).Where("title = ? AND performer_id = ?", title, performer.ID)
		if err := first(q, &song, "find song", fmt.Sprintf("song %q", title)); err != nil {
			return nil, err
		}
	}
	song.Performer = *performer
	return &song, nil
}

// FindSong looks a song up by its title and performer name.
func (c *Client) FindSong(ctx context.Context, title, performer string) (*models.Song, error) {
	var song models.Song
	q := c.DB.WithContext(ctx).
		Preload("Performer").
		Joins("JOIN performers ON performers.id = songs.performer_id").
		Where("songs.title = ? AND performers.name = ?", title, performer)
	if err := first(q, &song, "find song", fmt.Sprintf("song %q by %q", title, performer)); err != nil {
		return nil, err
	}
	return &song, nil
}

// GetOrCreatePlay is idempotent on (song, station, start). When a play with
// that key already exists it is returned unchanged, even if end differs.
func (c *Client) GetOrCreatePlay(ctx context.Context, song *models.Song, station *models.Station, start, end time.Time) (*models.Play, error) {
	if song == nil || song.ID == 0 || station == nil || station.ID == 0 {
		return nil, fmt.Errorf("play needs a stored song and station: %w", models.ErrInvalidInput)
	}
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return nil, fmt.Errorf("play start %s is not before end %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), models.ErrInvalidWindow)
	}

	play := models.Play{SongID: song.ID, StationID: station.ID, Start: start, End: end}
	if err := c.insertIfAbsent(ctx, &play, "song_id", "station_id", "started_at"); err != nil {
		return nil, models.NewStorageError("create play", err)
	}
	if play.ID == 0 {
		q := c.DB.WithContext(ctx).Where("song_id = ? AND station_id = ? AND started_at = ?", song.ID, station.ID, start)
		if err := first(q, &play, "find play", "play"); err != nil {
			return nil, err
		}
	}
	play.Song = *song
	play.Station = *station
	return &play, nil
}

// QueryPlays returns the plays matching f, oldest first, with song,
// performer and station loaded.
func (c *Client) QueryPlays(ctx context.Context, f models.PlayFilter) ([]models.Play, error) {
	if f.Stations != nil && len(f.Stations) == 0 {
		return nil, nil
	}

	q := c.DB.WithContext(ctx).
		Preload("Song.Performer").
		Preload("Station").
		Joins("JOIN stations ON stations.id = plays.station_id").
		Joins("JOIN songs ON songs.id = plays.song_id").
		Joins("JOIN performers ON performers.id = songs.performer_id").
		Where("plays.started_at >= ? AND plays.ended_at <= ?", f.Start.UTC(), f.End.UTC())

	if f.Stations != nil {
		q = q.Where("stations.name IN ?", f.Stations)
	}
	if f.Title != "" {
		q = q.Where("songs.title = ?", f.Title)
	}
	if f.Performer != "" {
		q = q.Where("performers.name = ?", f.Performer)
	}

	var plays []models.Play
	if err := q.Order("plays.started_at ASC, plays.id ASC").Find(&plays).Error; err != nil {
		return nil, models.NewStorageError("query plays", err)
	}
	return plays, nil
}
