package database_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "radio-charts/internal/db"
	"radio-charts/internal/db/dbtest"
	"radio-charts/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedPlay(t *testing.T, c *database.Client, title, performer, station, start, end string) *models.Play {
	t.Helper()
	ctx := context.Background()

	p, err := c.GetOrCreatePerformer(ctx, performer)
	require.NoError(t, err)
	s, err := c.GetOrCreateSong(ctx, title, p)
	require.NoError(t, err)
	st, err := c.GetOrCreateStation(ctx, station)
	require.NoError(t, err)
	play, err := c.GetOrCreatePlay(ctx, s, st, ts(start), ts(end))
	require.NoError(t, err)
	return play
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	first, err := c.GetOrCreateStation(ctx, "Channel1")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.GetOrCreateStation(ctx, "Channel1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}

	p1, err := c.GetOrCreatePerformer(ctx, "Colly")
	require.NoError(t, err)
	p2, err := c.GetOrCreatePerformer(ctx, "Colly")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)

	s1, err := c.GetOrCreateSong(ctx, "Hello", p1)
	require.NoError(t, err)
	s2, err := c.GetOrCreateSong(ctx, "Hello", p2)
	require.NoError(t, err)
	assert.Equal(t, s1.ID, s2.ID)
	assert.Equal(t, "Colly", s2.PerformerName())

	var stations, performers, songs int64
	c.DB.Model(&models.Station{}).Count(&stations)
	c.DB.Model(&models.Performer{}).Count(&performers)
	c.DB.Model(&models.Song{}).Count(&songs)
	assert.EqualValues(t, 1, stations)
	assert.EqualValues(t, 1, performers)
	assert.EqualValues(t, 1, songs)
}

func TestGetOrCreateIsCaseSensitive(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	a, err := c.GetOrCreateStation(ctx, "channel1")
	require.NoError(t, err)
	b, err := c.GetOrCreateStation(ctx, "Channel1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSameTitleDifferentPerformersAreDistinctSongs(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	p1, err := c.GetOrCreatePerformer(ctx, "P1")
	require.NoError(t, err)
	p2, err := c.GetOrCreatePerformer(ctx, "P2")
	require.NoError(t, err)

	s1, err := c.GetOrCreateSong(ctx, "Same", p1)
	require.NoError(t, err)
	s2, err := c.GetOrCreateSong(ctx, "Same", p2)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID, s2.ID)
}

func TestConcurrentGetOrCreateConverges(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := c.GetOrCreateStation(ctx, "Race FM")
			errs[i] = err
			if err == nil {
				ids[i] = st.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var n int64
	c.DB.Model(&models.Station{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestGetOrCreatePlay(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)

	first := seedPlay(t, c, "X", "P", "Channel2", "2014-01-10T01:00:00", "2014-01-10T01:03:00")
	again := seedPlay(t, c, "X", "P", "Channel2", "2014-01-10T01:00:00", "2014-01-10T01:04:00")
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.End.Equal(ts("2014-01-10T01:03:00")), "existing play is returned unchanged")

	// Same song on another station, and a repeat at another start, are new plays.
	other := seedPlay(t, c, "X", "P", "Channel3", "2014-01-10T01:00:00", "2014-01-10T01:03:00")
	later := seedPlay(t, c, "X", "P", "Channel2", "2014-01-10T02:00:00", "2014-01-10T02:03:00")
	assert.NotEqual(t, first.ID, other.ID)
	assert.NotEqual(t, first.ID, later.ID)

	var n int64
	c.DB.Model(&models.Play{}).Count(&n)
	assert.EqualValues(t, 3, n)
}

func TestGetOrCreatePlayRejectsEmptyInterval(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	p, err := c.GetOrCreatePerformer(ctx, "P")
	require.NoError(t, err)
	s, err := c.GetOrCreateSong(ctx, "X", p)
	require.NoError(t, err)
	st, err := c.GetOrCreateStation(ctx, "C")
	require.NoError(t, err)

	_, err = c.GetOrCreatePlay(ctx, s, st, ts("2014-01-10T01:00:00"), ts("2014-01-10T01:00:00"))
	assert.ErrorIs(t, err, models.ErrInvalidWindow)

	_, err = c.GetOrCreatePlay(ctx, s, st, ts("2014-01-10T02:00:00"), ts("2014-01-10T01:00:00"))
	assert.ErrorIs(t, err, models.ErrInvalidWindow)
}

func TestGetOrCreateRejectsEmptyNames(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	_, err := c.GetOrCreateStation(ctx, "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = c.GetOrCreatePerformer(ctx, "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = c.GetOrCreateSong(ctx, "Title", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestFindNotFound(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	ctx := context.Background()

	_, err := c.FindStation(ctx, "nowhere")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = c.FindPerformer(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = c.FindSong(ctx, "nothing", "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFindSongMatchesPerformer(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	seedPlay(t, c, "Same", "P1", "C", "2014-01-10T01:00:00", "2014-01-10T01:03:00")
	seedPlay(t, c, "Same", "P2", "C", "2014-01-10T02:00:00", "2014-01-10T02:03:00")

	song, err := c.FindSong(context.Background(), "Same", "P2")
	require.NoError(t, err)
	assert.Equal(t, "P2", song.PerformerName())
}

func TestQueryPlaysWindowContainment(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	seedPlay(t, c, "X", "P", "C", "2014-01-10T00:10:00", "2014-01-10T00:20:00")

	day := "2014-01-10T00:"
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"ends after window", "05:00", "15:00", 0},
		{"end on window edge", "05:00", "20:00", 1},
		{"starts before window", "11:00", "30:00", 0},
		{"start on window edge", "10:00", "30:00", 1},
		{"exact fit", "10:00", "20:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plays, err := c.QueryPlays(context.Background(), models.PlayFilter{
				Start: ts(day + tt.start),
				End:   ts(day + tt.end),
			})
			require.NoError(t, err)
			assert.Len(t, plays, tt.want)
		})
	}
}

func TestQueryPlaysFilters(t *testing.T) {
	c := dbtest.SetupInMemoryDB(t)
	seedPlay(t, c, "X", "P", "C1", "2014-01-10T01:00:00", "2014-01-10T01:03:00")
	seedPlay(t, c, "X", "P", "C2", "2014-01-10T02:00:00", "2014-01-10T02:03:00")
	seedPlay(t, c, "Y", "P", "C1", "2014-01-10T03:00:00", "2014-01-10T03:03:00")
	seedPlay(t, c, "X", "Q", "C1", "2014-01-10T04:00:00", "2014-01-10T04:03:00")

	ctx := context.Background()
	window := models.PlayFilter{Start: ts("2014-01-10T00:00:00"), End: ts("2014-01-11T00:00:00")}

	all, err := c.QueryPlays(ctx, window)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "C1", all[0].Station.Name)
	assert.Equal(t, "P", all[0].Song.PerformerName())

	f := window
	f.Stations = []string{"C1"}
	byStation, err := c.QueryPlays(ctx, f)
	require.NoError(t, err)
	assert.Len(t, byStation, 3)

	f = window
	f.Stations = []string{}
	none, err := c.QueryPlays(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, none)

	f = window
	f.Title, f.Performer = "X", "P"
	bySong, err := c.QueryPlays(ctx, f)
	require.NoError(t, err)
	require.Len(t, bySong, 2)
	assert.Equal(t, "C1", bySong[0].Station.Name)
	assert.Equal(t, "C2", bySong[1].Station.Name)

	f.Performer = "p"
	caseMismatch, err := c.QueryPlays(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, caseMismatch)
}
