package charts

import (
	"sort"

	"radio-charts/internal/models"
)

// RankedSong is a SongCount with its zero-based position in a ranking.
type RankedSong struct {
	Song  models.Song
	Count int
	Rank  int
}

// Rank orders songs by descending play count. Equal counts are ordered by
// ascending song ID so the output is reproducible. Ranks are positions in the
// output: ties get successive ranks, never a shared one.
//
// limit <= 0 keeps every song; otherwise only the first limit entries are kept,
// after ordering.
func Rank(counts map[uint]*SongCount, limit int) []RankedSong {
	ranked := make([]RankedSong, 0, len(counts))
	for _, sc := range counts {
		ranked = append(ranked, RankedSong{Song: sc.Song, Count: sc.Count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Song.ID < ranked[j].Song.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i
	}
	return ranked
}
