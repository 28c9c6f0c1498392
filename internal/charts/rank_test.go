package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radio-charts/internal/models"
)

func counts(pairs ...int) map[uint]*SongCount {
	m := make(map[uint]*SongCount)
	for i := 0; i+1 < len(pairs); i += 2 {
		id := uint(pairs[i])
		m[id] = &SongCount{Song: models.Song{ID: id}, Count: pairs[i+1]}
	}
	return m
}

func TestAggregateGroupsBySongID(t *testing.T) {
	a := models.Song{ID: 1, Title: "Same", Performer: models.Performer{Name: "P1"}}
	b := models.Song{ID: 2, Title: "Same", Performer: models.Performer{Name: "P2"}}
	plays := []models.Play{
		{SongID: 1, Song: a, StationID: 1},
		{SongID: 1, Song: a, StationID: 2},
		{SongID: 2, Song: b, StationID: 1},
		{SongID: 1, Song: a, StationID: 1},
	}

	got := Aggregate(plays)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].Count)
	assert.Equal(t, 1, got[2].Count)
	assert.Equal(t, "P2", got[2].Song.PerformerName())
}

func TestRankOrdersByCountThenSongID(t *testing.T) {
	ranked := Rank(counts(5, 2, 3, 7, 1, 2, 4, 9), 0)

	require.Len(t, ranked, 4)
	var ids []uint
	for _, r := range ranked {
		ids = append(ids, r.Song.ID)
	}
	assert.Equal(t, []uint{4, 3, 1, 5}, ids)
}

func TestRankIsMonotonic(t *testing.T) {
	ranked := Rank(counts(1, 3, 2, 3, 3, 3, 4, 1, 5, 8, 6, 0, 7, 3), 0)

	for i := 0; i+1 < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i].Count, ranked[i+1].Count)
		assert.Less(t, ranked[i].Rank, ranked[i+1].Rank)
	}
	for i, r := range ranked {
		assert.Equal(t, i, r.Rank, "rank is the zero-based position")
	}
}

func TestRankTiesGetDistinctRanks(t *testing.T) {
	ranked := Rank(counts(9, 4, 2, 4, 7, 4), 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, uint(2), ranked[0].Song.ID)
	assert.Equal(t, uint(7), ranked[1].Song.ID)
	assert.Equal(t, uint(9), ranked[2].Song.ID)
	assert.Equal(t, []int{0, 1, 2}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankLimitAppliesAfterOrdering(t *testing.T) {
	ranked := Rank(counts(1, 1, 2, 5, 3, 2, 4, 4, 5, 3), 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, uint(2), ranked[0].Song.ID)
	assert.Equal(t, uint(4), ranked[1].Song.ID)
}

func TestRankLimitLargerThanInput(t *testing.T) {
	assert.Len(t, Rank(counts(1, 1, 2, 2), 10), 2)
	assert.Empty(t, Rank(nil, 3))
}

func TestRankIsReproducible(t *testing.T) {
	in := counts(10, 1, 11, 1, 12, 1, 13, 1, 14, 1, 15, 1)
	first := Rank(in, 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rank(in, 0))
	}
}
