// Package catalog is the write path: it records stations, performers, songs
// and plays with get-or-create semantics so upstream retries are harmless.
package catalog

import (
	"context"
	"fmt"
	"time"

	"radio-charts/internal/models"
)

// Store is the write side of the play store.
type Store interface {
	GetOrCreateStation(ctx context.Context, name string) (*models.Station, error)
	GetOrCreatePerformer(ctx context.Context, name string) (*models.Performer, error)
	FindPerformer(ctx context.Context, name string) (*models.Performer, error)
	GetOrCreateSong(ctx context.Context, title string, performer *models.Performer) (*models.Song, error)
	FindSong(ctx context.Context, title, performer string) (*models.Song, error)
	GetOrCreatePlay(ctx context.Context, song *models.Song, station *models.Station, start, end time.Time) (*models.Play, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) AddChannel(ctx context.Context, name string) (*models.Station, error) {
	return s.store.GetOrCreateStation(ctx, name)
}

func (s *Service) AddPerformer(ctx context.Context, name string) (*models.Performer, error) {
	return s.store.GetOrCreatePerformer(ctx, name)
}

// AddSong records a song by an already known performer. An unknown performer
// is ErrNotFound: songs never create performers implicitly.
func (s *Service) AddSong(ctx context.Context, title, performer string) (*models.Song, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", models.ErrInvalidInput)
	}
	p, err := s.store.FindPerformer(ctx, performer)
	if err != nil {
		return nil, err
	}
	return s.store.GetOrCreateSong(ctx, title, p)
}

// AddPlay records a play of a known song. The station is created on first
// reference; the song must already exist.
func (s *Service) AddPlay(ctx context.Context, title, performer, channel string, start, end time.Time) (*models.Play, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("play start must be before end: %w", models.ErrInvalidWindow)
	}
	song, err := s.store.FindSong(ctx, title, performer)
	if err != nil {
		return nil, err
	}
	station, err := s.store.GetOrCreateStation(ctx, channel)
	if err != nil {
		return nil, err
	}
	return s.store.GetOrCreatePlay(ctx, song, station, start, end)
}
