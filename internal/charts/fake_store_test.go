package charts

import (
	"context"
	"sort"
	"time"

	"radio-charts/internal/models"
)

// fakeStore is an in-memory Store. IDs are assigned in insertion order.
type fakeStore struct {
	performers map[string]*models.Performer
	songs      map[[2]string]*models.Song
	stations   map[string]*models.Station
	plays      []models.Play
	queries    int
	err        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		performers: make(map[string]*models.Performer),
		songs:      make(map[[2]string]*models.Song),
		stations:   make(map[string]*models.Station),
	}
}

func (f *fakeStore) song(title, performer string) *models.Song {
	key := [2]string{title, performer}
	if s, ok := f.songs[key]; ok {
		return s
	}
	p, ok := f.performers[performer]
	if !ok {
		p = &models.Performer{ID: uint(len(f.performers) + 1), Name: performer}
		f.performers[performer] = p
	}
	s := &models.Song{ID: uint(len(f.songs) + 1), Title: title, PerformerID: p.ID, Performer: *p}
	f.songs[key] = s
	return s
}

func (f *fakeStore) station(name string) *models.Station {
	if st, ok := f.stations[name]; ok {
		return st
	}
	st := &models.Station{ID: uint(len(f.stations) + 1), Name: name}
	f.stations[name] = st
	return st
}

// add records n plays of a song on station, three minutes each, starting at
// start and spaced one hour apart.
func (f *fakeStore) add(title, performer, station string, start time.Time, n int) {
	s := f.song(title, performer)
	st := f.station(station)
	for i := 0; i < n; i++ {
		begin := start.Add(time.Duration(i) * time.Hour)
		f.plays = append(f.plays, models.Play{
			ID:        uint(len(f.plays) + 1),
			SongID:    s.ID,
			Song:      *s,
			StationID: st.ID,
			Station:   *st,
			Start:     begin,
			End:       begin.Add(3 * time.Minute),
		})
	}
}

func (f *fakeStore) QueryPlays(_ context.Context, q models.PlayFilter) ([]models.Play, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	allowed := map[string]bool{}
	for _, s := range q.Stations {
		allowed[s] = true
	}

	var out []models.Play
	for _, p := range f.plays {
		if p.Start.Before(q.Start) || p.End.After(q.End) {
			continue
		}
		if q.Stations != nil && !allowed[p.Station.Name] {
			continue
		}
		if q.Title != "" && p.Song.Title != q.Title {
			continue
		}
		if q.Performer != "" && p.Song.Performer.Name != q.Performer {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeStore) FindSong(_ context.Context, title, performer string) (*models.Song, error) {
	if s, ok := f.songs[[2]string{title, performer}]; ok {
		return s, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) FindStation(_ context.Context, name string) (*models.Station, error) {
	if st, ok := f.stations[name]; ok {
		return st, nil
	}
	return nil, models.ErrNotFound
}
