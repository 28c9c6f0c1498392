// Package charts answers the analytical queries over stored plays: plays of a
// song, plays on a channel, and the top songs report comparing a period with
// the one before it.
package charts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"radio-charts/internal/models"
)

// DefaultPeriod is used when neither the engine nor the query names a period.
const DefaultPeriod = 7 * 24 * time.Hour

// Store is the read side of the play store.
type Store interface {
	QueryPlays(ctx context.Context, f models.PlayFilter) ([]models.Play, error)
	FindSong(ctx context.Context, title, performer string) (*models.Song, error)
	FindStation(ctx context.Context, name string) (*models.Station, error)
}

// Engine holds no mutable state and can serve concurrent requests.
type Engine struct {
	store         Store
	defaultPeriod time.Duration
}

// New returns an Engine whose TopPlays falls back to defaultPeriod, or to
// DefaultPeriod when defaultPeriod is not positive.
func New(store Store, defaultPeriod time.Duration) *Engine {
	if defaultPeriod <= 0 {
		defaultPeriod = DefaultPeriod
	}
	return &Engine{store: store, defaultPeriod: defaultPeriod}
}

// DefaultPeriod is the period TopPlays uses when the query names none.
func (e *Engine) DefaultPeriod() time.Duration {
	return e.defaultPeriod
}

// SongPlay is one play of a song, as listed by ListSongPlays.
type SongPlay struct {
	Channel string    `json:"channel"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ChannelPlay is one play on a channel, as listed by ListChannelPlays.
type ChannelPlay struct {
	Title     string    `json:"title"`
	Performer string    `json:"performer"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// TopQuery parameters for TopPlays. A zero Period uses the engine default;
// a Limit of zero keeps every song.
type TopQuery struct {
	Channels []string
	Start    time.Time
	Period   time.Duration
	Limit    int
}

// find returns the plays lying inside w. A nil channels slice matches any
// channel; an empty one matches nothing.
func (e *Engine) find(ctx context.Context, op string, channels []string, w Window, title, performer string) ([]models.Play, error) {
	if channels != nil && len(channels) == 0 {
		return nil, nil
	}

	f := w.filter()
	f.Stations = channels
	f.Title = title
	f.Performer = performer

	timer := prometheus.NewTimer(windowQueryDuration.WithLabelValues(op))
	defer timer.ObserveDuration()

	plays, err := e.store.QueryPlays(ctx, f)
	if err != nil {
		if !errors.Is(err, models.ErrStorage) {
			err = models.NewStorageError("query plays", err)
		}
		return nil, err
	}
	return plays, nil
}

// ListSongPlays lists every play of the song (title, performer) inside
// [start, end), on any channel.
func (e *Engine) ListSongPlays(ctx context.Context, title, performer string, start, end time.Time) ([]SongPlay, error) {
	w, err := NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.FindSong(ctx, title, performer); err != nil {
		return nil, err
	}

	plays, err := e.find(ctx, "song_plays", nil, w, title, performer)
	if err != nil {
		return nil, err
	}

	out := make([]SongPlay, 0, len(plays))
	for _, p := range plays {
		out = append(out, SongPlay{Channel: p.Station.Name, Start: p.Start.UTC(), End: p.End.UTC()})
	}
	return out, nil
}

// ListChannelPlays lists every play on channel inside [start, end).
func (e *Engine) ListChannelPlays(ctx context.Context, channel string, start, end time.Time) ([]ChannelPlay, error) {
	w, err := NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.FindStation(ctx, channel); err != nil {
		return nil, err
	}

	plays, err := e.find(ctx, "channel_plays", []string{channel}, w, "", "")
	if err != nil {
		return nil, err
	}

	out := make([]ChannelPlay, 0, len(plays))
	for _, p := range plays {
		out = append(out, ChannelPlay{
			Title:     p.Song.Title,
			Performer: p.Song.PerformerName(),
			Start:     p.Start.UTC(),
			End:       p.End.UTC(),
		})
	}
	return out, nil
}

// TopPlays ranks the most played songs on the given channels over
// [Start, Start+Period) and compares each against its standing over the
// preceding period of the same length. Both rankings are limited
// independently before they are merged.
func (e *Engine) TopPlays(ctx context.Context, q TopQuery) (entries []TopPlayEntry, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		reportsTotal.WithLabelValues(status).Inc()
	}()

	channels := uniqueChannels(q.Channels)
	if len(channels) == 0 {
		return nil, models.ErrInvalidChannelSet
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d: %w", q.Limit, models.ErrInvalidInput)
	}

	period := q.Period
	if period == 0 {
		period = e.defaultPeriod
	}
	current, err := PeriodFrom(q.Start, period)
	if err != nil {
		return nil, err
	}
	previous := current.Previous()

	var now, before []RankedSong
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := e.rankWindow(gctx, channels, current, q.Limit)
		now = r
		return err
	})
	g.Go(func() error {
		r, err := e.rankWindow(gctx, channels, previous, q.Limit)
		before = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("top report computed",
		"channels", len(channels),
		"start", current.Start,
		"period", period,
		"current", len(now),
		"previous", len(before),
	)
	return Merge(now, before), nil
}

func (e *Engine) rankWindow(ctx context.Context, channels []string, w Window, limit int) ([]RankedSong, error) {
	plays, err := e.find(ctx, "top_plays", channels, w, "", "")
	if err != nil {
		return nil, err
	}
	return Rank(Aggregate(plays), limit), nil
}

// uniqueChannels drops blanks and repeats, keeping the first occurrence.
func uniqueChannels(channels []string) []string {
	seen := make(map[string]struct{}, len(channels))
	out := make([]string, 0, len(channels))
	for _, c := range channels {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
