package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radio-charts/internal/models"
)

func ranked(id uint, title string, count, rank int) RankedSong {
	return RankedSong{
		Song:  models.Song{ID: id, Title: title, Performer: models.Performer{Name: "P"}},
		Count: count,
		Rank:  rank,
	}
}

func TestMergeAttachesPreviousStanding(t *testing.T) {
	current := []RankedSong{ranked(1, "A", 9, 0), ranked(2, "B", 5, 1), ranked(3, "C", 2, 2)}
	previous := []RankedSong{ranked(3, "C", 7, 0), ranked(1, "A", 4, 1)}

	entries := Merge(current, previous)
	require.Len(t, entries, 3)

	assert.Equal(t, "A", entries[0].Title)
	assert.Equal(t, "P", entries[0].Performer)
	assert.Equal(t, 9, entries[0].Plays)
	assert.Equal(t, 4, entries[0].PreviousPlays)
	require.NotNil(t, entries[0].PreviousRank)
	assert.Equal(t, 1, *entries[0].PreviousRank)

	assert.Equal(t, 0, entries[1].PreviousPlays)
	assert.Nil(t, entries[1].PreviousRank)

	require.NotNil(t, entries[2].PreviousRank)
	assert.Equal(t, 0, *entries[2].PreviousRank, "rank zero is distinct from absence")
	assert.Equal(t, 7, entries[2].PreviousPlays)
}

func TestMergeMatchesBySongIdentityNotTitle(t *testing.T) {
	current := []RankedSong{ranked(1, "Same", 3, 0)}
	previous := []RankedSong{ranked(2, "Same", 8, 0)}

	entries := Merge(current, previous)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].PreviousRank)
	assert.Zero(t, entries[0].PreviousPlays)
}

func TestMergeEmptyCurrent(t *testing.T) {
	entries := Merge(nil, []RankedSong{ranked(1, "A", 1, 0)})
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
